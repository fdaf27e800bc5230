package ring

import (
	"reflect"
	"testing"
)

var bufferTests = []struct {
	name string
	ops  func() any
	want any
}{
	{
		name: "new_4_uint16",
		ops: func() any {
			return NewBuffer[uint16](4)
		},
		want: &Buffer[uint16]{data: make([]uint16, 4)},
	},
	{
		name: "new_4_uint16_write_2",
		ops: func() any {
			r := NewBuffer[uint16](4)
			r.Write([]uint16{1, 2})
			return r
		},
		want: &Buffer[uint16]{data: []uint16{1, 2, 0, 0}, head: 0, n: 2},
	},
	{
		name: "new_4_uint16_write_2_1",
		ops: func() any {
			r := NewBuffer[uint16](4)
			r.Write([]uint16{1, 2})
			r.Write([]uint16{3})
			return r
		},
		want: &Buffer[uint16]{data: []uint16{1, 2, 3, 0}, head: 0, n: 3},
	},
	{
		name: "new_4_uint16_write_2_adv1_1",
		ops: func() any {
			r := NewBuffer[uint16](4)
			r.Write([]uint16{1, 2})
			r.Advance(1)
			r.Write([]uint16{3})
			return r
		},
		want: &Buffer[uint16]{data: []uint16{1, 2, 3, 0}, head: 1, n: 2},
	},
	{
		name: "new_4_uint16_write_2_3",
		ops: func() any {
			r := NewBuffer[uint16](4)
			r.Write([]uint16{1, 2})
			r.Write([]uint16{3, 4, 5})
			return r
		},
		want: &Buffer[uint16]{data: []uint16{5, 2, 3, 4}, head: 1, n: 4},
	},
	{
		name: "new_4_uint16_write_3_2",
		ops: func() any {
			r := NewBuffer[uint16](4)
			r.Write([]uint16{1, 2, 3})
			r.Write([]uint16{4, 5})
			return r
		},
		want: &Buffer[uint16]{data: []uint16{5, 2, 3, 4}, head: 1, n: 4},
	},
	{
		name: "new_4_uint16_write_5",
		ops: func() any {
			r := NewBuffer[uint16](4)
			r.Write([]uint16{1, 2, 3, 4, 5})
			return r
		},
		want: &Buffer[uint16]{data: []uint16{2, 3, 4, 5}, head: 0, n: 4},
	},
	{
		name: "new_4_uint16_write_4_adv2_1_read",
		ops: func() any {
			r := NewBuffer[uint16](4)
			r.Write([]uint16{1, 2, 3, 4})
			r.Advance(2)
			r.Write([]uint16{5})
			var buf [4]uint16
			n := r.Read(buf[:])
			return []any{r, buf[:n]}
		},
		want: []any{
			&Buffer[uint16]{data: []uint16{0x5, 0x2, 0x3, 0x4}, head: 1, n: 0},
			[]uint16{0x3, 0x4, 0x5},
		},
	},
	{
		name: "new_4_uint16_write_4_adv2_1_copy",
		ops: func() any {
			r := NewBuffer[uint16](4)
			r.Write([]uint16{1, 2, 3, 4})
			r.Advance(2)
			r.Write([]uint16{5})
			var buf [4]uint16
			n := r.CopyTo(buf[:])
			return []any{r, buf[:n]}
		},
		want: []any{
			&Buffer[uint16]{data: []uint16{0x5, 0x2, 0x3, 0x4}, head: 2, n: 3},
			[]uint16{0x3, 0x4, 0x5},
		},
	},
	{
		name: "head_one_before_end",
		ops: func() any {
			var buf [10]uint16
			r := &Buffer[uint16]{
				data: []uint16{0x1, 0x2, 0x3, 0x4, 0x5, 0x6, 0x7, 0x8},
				head: 7, n: 4,
			}
			n := r.CopyTo(buf[:])
			return buf[:n]
		},
		want: []uint16{0x8, 0x1, 0x2, 0x3},
	},
	{
		name: "full_wrapped",
		ops: func() any {
			var buf [10]uint16
			r := &Buffer[uint16]{
				data: []uint16{0x1, 0x2, 0x3, 0x4, 0x5, 0x6, 0x7, 0x8},
				head: 3, n: 8,
			}
			n := r.CopyTo(buf[:])
			return []any{r.Len(), buf[:n]}
		},
		want: []any{8, []uint16{0x4, 0x5, 0x6, 0x7, 0x8, 0x1, 0x2, 0x3}},
	},
	{
		name: "empty_copy",
		ops: func() any {
			var buf [4]uint16
			r := NewBuffer[uint16](4)
			n := r.CopyTo(buf[:])
			return []any{r.Len(), buf[:n]}
		},
		want: []any{0, []uint16{}},
	},
	{
		name: "short_dst_wrapped",
		ops: func() any {
			var buf [2]uint16
			r := &Buffer[uint16]{
				data: []uint16{0x1, 0x2, 0x3, 0x4},
				head: 3, n: 4,
			}
			n := r.CopyTo(buf[:])
			return buf[:n]
		},
		want: []uint16{0x4, 0x1},
	},
	{
		name: "advance_past_end",
		ops: func() any {
			r := NewBuffer[uint16](4)
			r.Write([]uint16{1, 2, 3})
			r.Advance(10)
			return r
		},
		want: &Buffer[uint16]{data: []uint16{1, 2, 3, 0}, head: 3, n: 0},
	},
	{
		name: "float64_history",
		ops: func() any {
			r := NewBuffer[float64](3)
			for _, v := range []float64{1, 2, 3, 4, 5} {
				r.Write([]float64{v})
			}
			buf := make([]float64, r.Size())
			n := r.CopyTo(buf)
			return []any{r.Len(), buf[:n]}
		},
		want: []any{3, []float64{3, 4, 5}},
	},
	{
		name: "zero_size",
		ops: func() any {
			r := NewBuffer[float64](0)
			r.Write([]float64{1})
			var buf [1]float64
			return r.CopyTo(buf[:])
		},
		want: 0,
	},
}

func TestBuffer(t *testing.T) {
	for _, test := range bufferTests {
		t.Run(test.name, func(t *testing.T) {
			got := test.ops()
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("expected result:\ngot: %#v\nwant:%#v", got, test.want)
			}
		})
	}
}
