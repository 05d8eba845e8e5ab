package policy

import (
	"reflect"
	"testing"
)

func TestMakeExampleShapes(t *testing.T) {
	ex := MakeExample()
	if len(ex.State) != 9 {
		t.Fatalf("state len=%d", len(ex.State))
	}
	for name, im := range map[string]*Image{"primary": ex.PrimaryImage, "wrist": ex.WristImage} {
		if im == nil {
			t.Fatalf("%s image missing", name)
		}
		if !reflect.DeepEqual(im.Shape, []int{256, 256, 3}) || im.DType != Uint8 || len(im.U8) != 256*256*3 {
			t.Fatalf("%s: shape=%v dtype=%s len=%d", name, im.Shape, im.DType, len(im.U8))
		}
	}
	if ex.Prompt == nil || *ex.Prompt != ExamplePrompt {
		t.Fatalf("prompt=%v", ex.Prompt)
	}
	if ex.Tasks != nil || ex.Actions != nil {
		t.Fatalf("unexpected optional fields")
	}
}

func TestMakeExampleDeterministic(t *testing.T) {
	if !reflect.DeepEqual(MakeExample(), MakeExample()) {
		t.Fatalf("fixture is not deterministic")
	}
}
