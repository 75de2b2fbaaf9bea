package interp

import "testing"

func TestValueEquals(t *testing.T) {
	c := newClass("A", nil, nil, nil, nil)
	inst := NewInstanceOf(c)

	tests := []struct {
		a, b     Value
		expected bool
	}{
		{NewNil(), NewNil(), true},
		{NewNil(), NewNumber(0), false},
		{NewNil(), NewBool(false), false},
		{NewNil(), NewString(""), false},
		{NewNumber(1), NewNumber(1), true},
		{NewNumber(1), NewString("1"), false},
		{NewString("a"), NewString("a"), true},
		{NewBool(true), NewBool(true), true},
		{NewInstance(inst), NewInstance(inst), true},
		{NewInstance(inst), NewInstance(NewInstanceOf(c)), false},
		{NewClass(c), NewClass(c), true},
	}

	for _, tt := range tests {
		if got := tt.a.Equals(tt.b); got != tt.expected {
			t.Errorf("%v == %v: got %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestValueString(t *testing.T) {
	c := newClass("Point", nil, nil, nil, nil)
	tests := []struct {
		v        Value
		expected string
	}{
		{NewNil(), "nil"},
		{NewBool(true), "true"},
		{NewNumber(1), "1"},
		{NewNumber(1.5), "1.5"},
		{NewNumber(-3), "-3"},
		{NewString("hi"), "hi"},
		{NewClass(c), "Point class"},
		{NewInstance(NewInstanceOf(c)), "Point instance"},
		{NewFunction(&Function{Name: "f"}), "<fn f>"},
		{NewFunction(&Function{Name: "lambda", IsLambda: true}), "<fn lambda>"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	falsy := []Value{NewNil(), NewBool(false), {}}
	truthy := []Value{NewBool(true), NewNumber(0), NewString(""), NewClass(newClass("A", nil, nil, nil, nil))}

	for _, v := range falsy {
		if v.IsTruthy() {
			t.Errorf("%v should be falsy", v)
		}
	}
	for _, v := range truthy {
		if !v.IsTruthy() {
			t.Errorf("%v should be truthy", v)
		}
	}
}

func TestEnvironmentSlots(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define(NewNumber(1))
	outer.Define(NewNumber(2))

	inner := NewEnvironment(outer)
	if slot := inner.Define(NewString("x")); slot != 0 {
		t.Fatalf("first slot = %d", slot)
	}

	if got := inner.GetAt(1, 1); got.AsNumber() != 2 {
		t.Errorf("GetAt(1, 1) = %v", got)
	}
	if !inner.AssignAt(1, 0, NewNumber(9)) {
		t.Fatal("AssignAt failed")
	}
	if got := outer.GetAt(0, 0); got.AsNumber() != 9 {
		t.Errorf("outer slot 0 = %v", got)
	}
	if got := inner.GetAt(5, 0); got.IsInitialized() {
		t.Errorf("out of range distance should be uninitialized, got %v", got)
	}
	if inner.AssignAt(0, 3, NewNil()) {
		t.Error("AssignAt to a missing slot should fail")
	}
}
