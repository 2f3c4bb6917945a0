package shading

import "github.com/go-gl/mathgl/mgl32"

// UniformKind is the GLSL type of a uniform slot.
type UniformKind int

const (
	UniformFloat UniformKind = iota
	UniformVec2
	UniformVec3
)

// Components returns the number of floats per element.
func (k UniformKind) Components() int {
	switch k {
	case UniformVec2:
		return 2
	case UniformVec3:
		return 3
	default:
		return 1
	}
}

// UniformSpec declares one uniform of a composed program.
type UniformSpec struct {
	Name  string
	Kind  UniformKind
	Count int // array length, 1 for scalars
}

// Uniform is one slot of a UniformTable. Values is allocated once and written in place.
type Uniform struct {
	UniformSpec
	Values []float32
	dirty  bool
}

// UniformTable is the persistent set of uniform values for a program. It is created once
// from the program's declarations and mutated every frame; no slot is ever reallocated,
// so values handed to the GPU can be read straight from the backing slices.
type UniformTable struct {
	slots []Uniform
	index map[string]int
}

// NewUniformTable allocates one slot per declaration.
func NewUniformTable(specs []UniformSpec) *UniformTable {
	t := &UniformTable{
		slots: make([]Uniform, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for i, s := range specs {
		if s.Count < 1 {
			s.Count = 1
		}
		t.slots[i] = Uniform{
			UniformSpec: s,
			Values:      make([]float32, s.Count*s.Kind.Components()),
			dirty:       true,
		}
		t.index[s.Name] = i
	}
	return t
}

// Len returns the number of declared uniforms.
func (t *UniformTable) Len() int {
	return len(t.slots)
}

// Has reports whether a uniform was declared.
func (t *UniformTable) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the backing values of a uniform, or nil if it was not declared.
func (t *UniformTable) Get(name string) []float32 {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.slots[i].Values
}

// SetFloat writes a float uniform. Writes to undeclared names are dropped, the same way
// GL ignores location -1.
func (t *UniformTable) SetFloat(name string, v float32) {
	t.write(name, 0, v)
}

// SetFloatAt writes element i of a float array uniform.
func (t *UniformTable) SetFloatAt(name string, i int, v float32) {
	t.write(name, i, v)
}

// SetVec2 writes a vec2 uniform.
func (t *UniformTable) SetVec2(name string, v mgl32.Vec2) {
	t.write(name, 0, v[:]...)
}

// SetVec3 writes a vec3 uniform.
func (t *UniformTable) SetVec3(name string, v mgl32.Vec3) {
	t.write(name, 0, v[:]...)
}

// SetVec3At writes element i of a vec3 array uniform.
func (t *UniformTable) SetVec3At(name string, i int, v mgl32.Vec3) {
	t.write(name, i, v[:]...)
}

func (t *UniformTable) write(name string, elem int, vals ...float32) {
	idx, ok := t.index[name]
	if !ok {
		return
	}
	u := &t.slots[idx]
	if elem < 0 || elem >= u.Count || len(vals) != u.Kind.Components() {
		return
	}
	dst := u.Values[elem*len(vals) : (elem+1)*len(vals)]
	for j, v := range vals {
		if dst[j] != v {
			dst[j] = v
			u.dirty = true
		}
	}
}

// Flush calls fn for every uniform changed since the last flush and clears the dirty marks.
func (t *UniformTable) Flush(fn func(u *Uniform)) {
	for i := range t.slots {
		u := &t.slots[i]
		if !u.dirty {
			continue
		}
		fn(u)
		u.dirty = false
	}
}

// Each calls fn for every uniform regardless of dirty state.
func (t *UniformTable) Each(fn func(u *Uniform)) {
	for i := range t.slots {
		fn(&t.slots[i])
	}
}
