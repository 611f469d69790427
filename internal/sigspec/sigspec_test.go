package sigspec

import (
	"testing"
)

func TestDecls(t *testing.T) {
	data := []struct {
		in   string
		out  []Decl
		fail string
	}{
		{in: "count[8], clk, rst", out: []Decl{{"count", 8}, {"clk", 1}, {"rst", 1}}},
		{in: "a", out: []Decl{{"a", 1}}},
		{in: "  _r0 [ 32 ] ", out: []Decl{{"_r0", 32}}},
		{in: "", out: nil},
		{in: "count[", fail: "missing bit width"},
		{in: "count[8", fail: "missing close bracket"},
		{in: "count[0]", fail: "bit width must be at least 1"},
		{in: "a b", fail: "expected comma or end of input"},
		{in: "a,,b", fail: "expected signal name"},
		{in: "8a", fail: "expected signal name"},
		{in: "a, [8]", fail: "expected signal name"},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			out, err := Decls(d.in)
			if d.fail != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", d.fail)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(out) != len(d.out) {
				t.Fatalf("got %v, want %v", out, d.out)
			}
			for i := range out {
				if out[i] != d.out[i] {
					t.Fatalf("decl %d: got %v, want %v", i, out[i], d.out[i])
				}
			}
		})
	}
}

func TestSensitivity(t *testing.T) {
	data := []struct {
		in   string
		out  Sense
		fail bool
	}{
		{in: "posedge clk", out: Sense{Posedge, "clk"}},
		{in: "negedge rst_n", out: Sense{Negedge, "rst_n"}},
		{in: "edge irq", out: Sense{Anyedge, "irq"}},
		{in: "  posedge   clk  ", out: Sense{Posedge, "clk"}},
		{in: "bothedge clk", fail: true},
		{in: "posedge", fail: true},
		{in: "posedge clk extra", fail: true},
		{in: "", fail: true},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			out, err := Sensitivity(d.in)
			if d.fail {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if out != d.out {
				t.Fatalf("got %v, want %v", out, d.out)
			}
		})
	}
}
