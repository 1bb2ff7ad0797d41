package graph

import "testing"

func TestUniqueNaming(t *testing.T) {
	g := NewGraph("test")
	v := g.CreateVariable("x", NewType(Float32, 4), InitExtern, 0, false)

	r1 := g.CreateRelu("relu", v.Output())
	r2 := g.CreateRelu("relu", v.Output())

	if r1.Name() != "relu" {
		t.Errorf("first node name = %q, want %q", r1.Name(), "relu")
	}
	if r2.Name() == r1.Name() {
		t.Errorf("second node kept duplicate name %q", r2.Name())
	}
	if r2.Name() != "relu_1" {
		t.Errorf("second node name = %q, want %q", r2.Name(), "relu_1")
	}
}

func TestCreateConvolutionShapes(t *testing.T) {
	g := NewGraph("test")
	in := g.CreateVariable("input", NewType(Float32, 8, 28, 28, 1), InitExtern, 0, false)

	conv := g.CreateConvolution("conv", in.Output(), 16, 5, 1, 2)

	if want := (Shape{8, 28, 28, 16}); !conv.Result().Type().Dims.Equal(want) {
		t.Errorf("conv output dims = %v, want %v", conv.Result().Type().Dims, want)
	}
	if want := (Shape{16, 5, 5, 1}); !conv.Filter().Type().Dims.Equal(want) {
		t.Errorf("conv filter dims = %v, want %v", conv.Filter().Type().Dims, want)
	}
	if want := (Shape{16}); !conv.Bias().Type().Dims.Equal(want) {
		t.Errorf("conv bias dims = %v, want %v", conv.Bias().Type().Dims, want)
	}

	filter := conv.Filter().Node.(*Variable)
	if !filter.Trainable() {
		t.Error("conv filter variable should be trainable")
	}
}

func TestCreatePoolShapes(t *testing.T) {
	g := NewGraph("test")
	in := g.CreateVariable("input", NewType(Float32, 8, 28, 28, 16), InitExtern, 0, false)

	pool := g.CreatePool("pool", PoolMax, in.Output(), 2, 2, 0)

	if want := (Shape{8, 14, 14, 16}); !pool.Result().Type().Dims.Equal(want) {
		t.Errorf("pool output dims = %v, want %v", pool.Result().Type().Dims, want)
	}
}

func TestCreateFullyConnectedFlattens(t *testing.T) {
	g := NewGraph("test")
	in := g.CreateVariable("input", NewType(Float32, 8, 14, 14, 16), InitExtern, 0, false)

	fc := g.CreateFullyConnected("fc", in.Output(), 10)

	if want := (Shape{8, 10}); !fc.Result().Type().Dims.Equal(want) {
		t.Errorf("fc output dims = %v, want %v", fc.Result().Type().Dims, want)
	}
	if want := (Shape{14 * 14 * 16, 10}); !fc.Weights().Type().Dims.Equal(want) {
		t.Errorf("fc weights dims = %v, want %v", fc.Weights().Type().Dims, want)
	}
	// The 4D input must have gone through an inserted flatten reshape.
	if _, ok := fc.Input().Node.(*ReshapeNode); !ok {
		t.Errorf("fc input node is %T, want *ReshapeNode", fc.Input().Node)
	}
}

func TestCreateSaveAllocatesDestination(t *testing.T) {
	g := NewGraph("test")
	in := g.CreateVariable("input", NewType(Float32, 4), InitExtern, 0, false)
	act := g.CreateRelu("relu", in.Output())

	save := g.CreateSave("result", act.Result())

	dest := save.Dest()
	if dest == nil {
		t.Fatal("save has no destination variable")
	}
	if !dest.Type().Equal(act.Result().Type()) {
		t.Errorf("destination type = %s, want %s", dest.Type(), act.Result().Type())
	}
	if dest.Trainable() {
		t.Error("save destination should not be trainable")
	}
	found := false
	for _, v := range g.Variables() {
		if v == dest {
			found = true
		}
	}
	if !found {
		t.Error("save destination was not added to the graph's variables")
	}
}

func TestGradientVariableRegistry(t *testing.T) {
	g := NewGraph("test")
	w := g.CreateVariable("w", NewType(Float32, 4), InitXavier, 4, true)
	gw := g.CreateVariable("_grad_w", NewType(Float32, 4), InitExtern, 0, false)

	if _, ok := g.GradientVariable(w); ok {
		t.Error("unexpected gradient variable before recording")
	}
	g.RecordGradientVariable(w, gw)
	got, ok := g.GradientVariable(w)
	if !ok || got != gw {
		t.Errorf("GradientVariable(w) = %v, %v; want %v, true", got, ok, gw)
	}
}
