package catalog

import (
	"testing"

	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

type stubProc struct{ params map[string]string }

func (s *stubProc) TypeInfo() TypeInfo {
	return TypeInfo{
		Name:       "Stub",
		Input:      Slotted(1),
		Parameters: []ParamSpec{{Name: "factor", Type: Float}},
	}
}
func (s *stubProc) SetParameter(name, value string) error {
	if name != "factor" {
		return hderr.New("Stub.SetParameter", hderr.UnknownParameter)
	}
	s.params[name] = value
	return nil
}
func (s *stubProc) GetParameter(name string) (string, error) { return s.params[name], nil }
func (s *stubProc) Run(inputs []*geom.World) (*geom.World, error) {
	return geom.NewWorld(), nil
}

func TestRegistryNewAndList(t *testing.T) {
	r := NewRegistry()
	r.Register(Registration{
		Info: (&stubProc{}).TypeInfo(),
		New:  func() Processor { return &stubProc{params: map[string]string{}} },
	})

	p, err := r.New("Stub")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.TypeInfo().Name != "Stub" {
		t.Fatalf("unexpected type name: %s", p.TypeInfo().Name)
	}

	list := r.List()
	if len(list) != 1 || list[0].Name != "Stub" {
		t.Fatalf("unexpected List result: %+v", list)
	}
}

func TestRegistryUnknownType(t *testing.T) {
	r := NewRegistry()
	if _, err := r.New("DoesNotExist"); !hderr.Is(err, hderr.UnknownProcessorType) {
		t.Fatalf("expected UnknownProcessorType, got %v", err)
	}
	if _, err := r.TypeInfo("DoesNotExist"); !hderr.Is(err, hderr.UnknownProcessorType) {
		t.Fatalf("expected UnknownProcessorType, got %v", err)
	}
}

func TestRegistryNewReturnsFreshInstances(t *testing.T) {
	r := NewRegistry()
	r.Register(Registration{
		Info: (&stubProc{}).TypeInfo(),
		New:  func() Processor { return &stubProc{params: map[string]string{}} },
	})

	p1, _ := r.New("Stub")
	p2, _ := r.New("Stub")
	if err := p1.SetParameter("factor", "3"); err != nil {
		t.Fatalf("SetParameter: %v", err)
	}
	v2, _ := p2.GetParameter("factor")
	if v2 == "3" {
		t.Fatal("expected two New() calls to produce independent processor instances")
	}
}

func TestHasParameter(t *testing.T) {
	p := &stubProc{params: map[string]string{}}
	if !HasParameter(p, "factor") {
		t.Fatal("expected factor to be a declared parameter")
	}
	if HasParameter(p, "nonexistent") {
		t.Fatal("expected nonexistent to not be a declared parameter")
	}
}

func TestListIsSortedByName(t *testing.T) {
	r := NewRegistry()
	r.Register(Registration{Info: TypeInfo{Name: "Zebra"}, New: func() Processor { return nil }})
	r.Register(Registration{Info: TypeInfo{Name: "Alpha"}, New: func() Processor { return nil }})

	list := r.List()
	if len(list) != 2 || list[0].Name != "Alpha" || list[1].Name != "Zebra" {
		t.Fatalf("expected sorted [Alpha Zebra], got %+v", list)
	}
}
