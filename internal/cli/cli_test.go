package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"

	"google.golang.org/grpc"

	grpcAdapter "github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/grpc"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/catalog"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// run executes the CLI in an empty directory so no config file is picked up
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// startServer runs a diagnosis server for --remote tests
func startServer(t *testing.T) string {
	t.Helper()

	plants, err := catalog.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	srv := grpc.NewServer()
	grpcAdapter.RegisterDiagnosisServer(srv, grpcAdapter.NewDiagnosisHandler(plants, mock.NewFakeSearcher(2), "https://leafit.example.com"))
	go srv.Serve(lis)
	t.Cleanup(srv.GracefulStop)

	return lis.Addr().String()
}

func TestDiagnose_Local(t *testing.T) {
	out, err := run(t, "diagnose", "--dir", "south", "--win", "large", "--dist", "near")
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}

	for _, want := range []string{"Strong", "100/100", "Recommended plants", "http://localhost:8080/?dir=south&dist=near&obs=0&win=large"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestDiagnose_JSON(t *testing.T) {
	out, err := run(t, "diagnose", "--dir", "north", "--win", "small", "--dist", "far", "--obstructed", "--json", "--base-url", "https://leafit.example.com")
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}

	var got diagnosisOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if got.Score != 0 || got.Level != domain.AlmostNone {
		t.Errorf("expected almost-none 0, got %s %d", got.Level, got.Score)
	}
	if got.ShareURL != "https://leafit.example.com/?dir=north&dist=far&obs=1&win=small" {
		t.Errorf("unexpected share url %q", got.ShareURL)
	}
}

func TestDiagnose_InvalidFlag(t *testing.T) {
	_, err := run(t, "diagnose", "--dir", "up")
	if !errors.Is(err, domain.ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestDiagnose_Remote(t *testing.T) {
	addr := startServer(t)

	out, err := run(t, "diagnose", "--dir", "east", "--win", "medium", "--dist", "medium", "--remote", addr)
	if err != nil {
		t.Fatalf("remote diagnose failed: %v", err)
	}
	if !strings.Contains(out, "Moderate") || !strings.Contains(out, "65/100") {
		t.Errorf("unexpected remote output:\n%s", out)
	}
	if !strings.Contains(out, "https://leafit.example.com/?dir=east") {
		t.Errorf("expected the server's share url:\n%s", out)
	}
}

func TestDecode(t *testing.T) {
	out, err := run(t, "decode", "https://leafit.example.com/?dir=west&win=large&dist=medium&obs=1")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for _, want := range []string{"West", "Large", "Yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = run(t, "decode", "--json", "dir=north&win=small&dist=near&obs=0")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.Contains(out, `"orientation": "north"`) {
		t.Errorf("unexpected json:\n%s", out)
	}

	if _, err := run(t, "decode", "dir=north&win=small"); !errors.Is(err, domain.ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile for an incomplete link, got %v", err)
	}
}

func TestPlants(t *testing.T) {
	out, err := run(t, "plants")
	if err != nil {
		t.Fatalf("plants failed: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 50 {
		t.Errorf("expected 50 lines, got %d", lines)
	}

	out, err = run(t, "plants", "--care", "moderate", "--details")
	if err != nil {
		t.Fatalf("plants failed: %v", err)
	}
	if strings.Contains(out, "Pachira") {
		t.Error("expected easy plants to be filtered out")
	}
	if !strings.Contains(out, "Intermediate") {
		t.Errorf("expected care details:\n%s", out)
	}

	if _, err := run(t, "plants", "--care", "expert"); err == nil {
		t.Error("expected error for unknown care level")
	}
}

func TestPlants_Remote(t *testing.T) {
	addr := startServer(t)

	out, err := run(t, "plants", "--remote", addr)
	if err != nil {
		t.Fatalf("remote plants failed: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 50 {
		t.Errorf("expected 50 lines, got %d", lines)
	}
}

func TestPlant(t *testing.T) {
	out, err := run(t, "plant", "monstera")
	if err != nil {
		t.Fatalf("plant failed: %v", err)
	}
	if !strings.Contains(out, "Monstera") || !strings.Contains(out, "Varieties") {
		t.Errorf("unexpected output:\n%s", out)
	}

	addr := startServer(t)
	if _, err := run(t, "plant", "no-such-plant", "--remote", addr); !errors.Is(err, domain.ErrPlantNotFound) {
		t.Errorf("expected ErrPlantNotFound, got %v", err)
	}
}

func TestProducts(t *testing.T) {
	out, err := run(t, "products", "houseplant", "Pachira", "--limit", "2")
	if err != nil {
		t.Fatalf("products failed: %v", err)
	}
	if !strings.Contains(out, "houseplant Pachira #2") || strings.Contains(out, "houseplant Pachira #3") {
		t.Errorf("expected two mock listings:\n%s", out)
	}

	addr := startServer(t)
	out, err = run(t, "products", "houseplant Ivy", "--remote", addr)
	if err != nil {
		t.Fatalf("remote products failed: %v", err)
	}
	if !strings.Contains(out, "houseplant Ivy #1") {
		t.Errorf("unexpected remote output:\n%s", out)
	}
}
