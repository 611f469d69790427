// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/konpaku-ming/netsim/sym"
	"github.com/pkg/errors"
)

// A VCDRecorder writes samples as a Value Change Dump, one timestep per
// clock cycle. Only changed signals are dumped per step.
//
type VCDRecorder struct {
	w     *bufio.Writer
	vars  []sym.Var
	ids   []string
	prev  []uint64
	begun bool
}

// NewVCD returns a recorder writing VCD to w.
//
func NewVCD(w io.Writer) *VCDRecorder {
	return &VCDRecorder{w: bufio.NewWriter(w)}
}

// idCode returns the VCD identifier for variable i: printable ASCII digits
// in base 94, starting at "!".
func idCode(i int) string {
	var b []byte
	for {
		b = append([]byte{byte(33 + i%94)}, b...)
		i = i/94 - 1
		if i < 0 {
			break
		}
	}
	return string(b)
}

func (r *VCDRecorder) Begin(design string, vars []sym.Var) error {
	r.vars = vars
	r.ids = make([]string, len(vars))
	r.prev = make([]uint64, len(vars))

	w := r.w
	w.WriteString("$date " + time.Now().Format(time.RFC1123) + " $end\n")
	w.WriteString("$version netsim $end\n")
	w.WriteString("$timescale 1ns $end\n")

	// one $scope per hierarchy level, variables grouped by scope
	var open []string
	for i, v := range vars {
		scope := ""
		if j := strings.LastIndexByte(v.Path, '.'); j >= 0 {
			scope = v.Path[:j]
		}
		var parts []string
		if scope != "" {
			parts = strings.Split(scope, ".")
		}
		if len(parts) == 0 || parts[0] != design {
			parts = append([]string{design}, parts...)
		}
		common := 0
		for common < len(open) && common < len(parts) && open[common] == parts[common] {
			common++
		}
		for k := len(open); k > common; k-- {
			w.WriteString("$upscope $end\n")
		}
		for _, p := range parts[common:] {
			w.WriteString("$scope module " + p + " $end\n")
		}
		open = parts
		r.ids[i] = idCode(i)
		w.WriteString("$var wire " + strconv.Itoa(v.Width) + " " + r.ids[i] +
			" " + v.Name + " $end\n")
	}
	for range open {
		w.WriteString("$upscope $end\n")
	}
	w.WriteString("$enddefinitions $end\n")
	return errors.Wrap(w.Flush(), "writing VCD header")
}

func (r *VCDRecorder) Sample(cycle uint64, vals []uint64) error {
	w := r.w
	w.WriteString("#" + strconv.FormatUint(cycle, 10) + "\n")
	if !r.begun {
		w.WriteString("$dumpvars\n")
	}
	for i, v := range vals {
		if r.begun && v == r.prev[i] {
			continue
		}
		r.prev[i] = v
		r.emit(i, v)
	}
	if !r.begun {
		w.WriteString("$end\n")
		r.begun = true
	}
	return errors.Wrap(w.Flush(), "writing VCD sample")
}

func (r *VCDRecorder) emit(i int, v uint64) {
	w := r.w
	if r.vars[i].Width == 1 {
		if v != 0 {
			w.WriteByte('1')
		} else {
			w.WriteByte('0')
		}
		w.WriteString(r.ids[i] + "\n")
		return
	}
	w.WriteString("b" + strconv.FormatUint(v, 2) + " " + r.ids[i] + "\n")
}

func (r *VCDRecorder) Close() error {
	return errors.Wrap(r.w.Flush(), "closing VCD")
}

var _ Recorder = (*VCDRecorder)(nil)
