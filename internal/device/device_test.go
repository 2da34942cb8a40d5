package device

import (
	"errors"
	"testing"
)

func TestSelect_SingleDeviceNoSelector(t *testing.T) {
	devices := []Info{{Name: "Salon", Identifier: "aa-bb"}}

	info, err := Select(devices, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Salon" {
		t.Errorf("selected %s, want Salon", info.Name)
	}
}

func TestSelect_MultipleDevicesNeedSelector(t *testing.T) {
	devices := []Info{
		{Name: "Salon", Identifier: "aa-bb"},
		{Name: "Chambre", Identifier: "cc-dd"},
	}

	if _, err := Select(devices, ""); err == nil {
		t.Error("expected error when several devices match an empty selector")
	}

	info, err := Select(devices, "cham")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Chambre" {
		t.Errorf("selected %s, want Chambre", info.Name)
	}
}

func TestSelect_ByIdentifier(t *testing.T) {
	devices := []Info{
		{Name: "Salon", Identifier: "aa-bb"},
		{Name: "Chambre", Identifier: "cc-dd"},
	}

	info, err := Select(devices, "CC-DD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Chambre" {
		t.Errorf("selected %s, want Chambre", info.Name)
	}
}

func TestSelect_NotFound(t *testing.T) {
	devices := []Info{{Name: "Salon", Identifier: "aa-bb"}}

	_, err := Select(devices, "cuisine")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Error() != "Appareil 'cuisine' non trouve" {
		t.Errorf("unexpected message: %v", notFound)
	}

	_, err = Select(nil, "")
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Error() != "Aucun appareil trouve sur le reseau" {
		t.Errorf("unexpected message: %v", notFound)
	}
}

func TestRequireFeature(t *testing.T) {
	dev := &RemoteClient{features: map[Feature]bool{FeatureSelect: true}}

	if err := RequireFeature(dev, FeatureSelect); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := RequireFeature(dev, FeatureLaunchApp)
	var featErr *FeatureNotAvailableError
	if !errors.As(err, &featErr) {
		t.Fatalf("expected FeatureNotAvailableError, got %v", err)
	}
	if featErr.Feature != FeatureLaunchApp {
		t.Errorf("Feature = %s, want LaunchApp", featErr.Feature)
	}
}

func TestParseScan(t *testing.T) {
	out := `Scan Results
========================================
       Name: Salon
   Model/SW: Gen 4K, tvOS 17.3
    Address: 192.168.1.40
        MAC: AA:BB:CC:DD:EE:FF
 Deep Sleep: False
 Identifier: aa11bb22-cc33-dd44-ee55-ff6677889900
   Services:
     - Protocol: Companion, Port: 49153

       Name: Chambre
    Address: 192.168.1.41
 Identifier: 11223344-5566-7788-99aa-bbccddeeff00
`

	devices := parseScan(out)
	if len(devices) != 2 {
		t.Fatalf("parsed %d devices, want 2", len(devices))
	}
	if devices[0].Name != "Salon" || devices[0].Address != "192.168.1.40" ||
		devices[0].Identifier != "aa11bb22-cc33-dd44-ee55-ff6677889900" {
		t.Errorf("first device = %+v", devices[0])
	}
	if devices[1].Name != "Chambre" {
		t.Errorf("second device = %+v", devices[1])
	}
}

func TestParseScan_Empty(t *testing.T) {
	if devices := parseScan("Scan Results\n====\n"); len(devices) != 0 {
		t.Errorf("expected no devices, got %v", devices)
	}
}

func TestParseFeatures(t *testing.T) {
	out := `Feature list:
 - Up: Available
 - Down: Available
 - LaunchApp: Unavailable
 - PowerState: Unsupported
 - Select: Available
`
	features := parseFeatures(out)

	for _, f := range []Feature{FeatureUp, FeatureDown, FeatureSelect} {
		if !features[f] {
			t.Errorf("feature %s should be available", f)
		}
	}
	for _, f := range []Feature{FeatureLaunchApp, FeaturePowerState} {
		if features[f] {
			t.Errorf("feature %s should be unavailable", f)
		}
	}
}

func TestButtonFeature(t *testing.T) {
	if got := ButtonFeature(ButtonPlayPause); got != FeaturePlayPause {
		t.Errorf("ButtonFeature(play_pause) = %s, want PlayPause", got)
	}
	if got := ButtonFeature(ButtonHome); got != FeatureHome {
		t.Errorf("ButtonFeature(home) = %s, want Home", got)
	}
}
