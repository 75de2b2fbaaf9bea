package formatter

import (
	"strings"
	"testing"
)

const messy = `// header
var a=1;fun add(x,y){return x+y;}
class A<B{init(x){this.x=x;} area{return 1;} class make(){return A(1);}}
for(var i=0;i<3;i=i+1)print i;
if(a>1){print "big";}else if(a==1)print "one"; else{print "small";}
while(true){break;}
var f=fun(n){return n*2;};
print a?1:2; // trailing
`

const formatted = `// header
var a = 1;

fun add(x, y) {
    return x + y;
}

class A < B {
    init(x) {
        this.x = x;
    }

    area {
        return 1;
    }

    class make() {
        return A(1);
    }
}

for (var i = 0; i < 3; i = i + 1)
    print i;
if (a > 1) {
    print "big";
} else if (a == 1)
    print "one";
else {
    print "small";
}
while (true) {
    break;
}
var f = fun (n) {
    return n * 2;
};
print a ? 1 : 2; // trailing
`

func TestFormat(t *testing.T) {
	got, err := FormatWithDefaultOptions(messy, "messy.lox")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != formatted {
		t.Errorf("got:\n%s\nwant:\n%s", got, formatted)
	}
}

func TestFormatIdempotent(t *testing.T) {
	once, err := FormatWithDefaultOptions(messy, "messy.lox")
	if err != nil {
		t.Fatal(err)
	}
	twice, err := FormatWithDefaultOptions(once, "messy.lox")
	if err != nil {
		t.Fatal(err)
	}
	if once != twice {
		t.Errorf("formatting is not idempotent:\n%s\n---\n%s", once, twice)
	}
}

func TestFormatForLoops(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"for(;;){break;}", "for (;;) {\n    break;\n}\n"},
		{"for(;i<3;)i=i+1;", "for (; i < 3;)\n    i = i + 1;\n"},
		{"for(i=0;;i=i+1){}", "for (i = 0;; i = i + 1) {\n}\n"},
		{"for(var i=0;i<2;i=i+1)for(var j=0;j<2;j=j+1)print i*j;",
			"for (var i = 0; i < 2; i = i + 1)\n    for (var j = 0; j < 2; j = j + 1)\n        print i * j;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := FormatWithDefaultOptions(tt.input, "for.lox")
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print -a- -b;", "print -a - -b;\n"},
		{"print !(a and b)or c;", "print !(a and b) or c;\n"},
		{"print (1,2);", "print (1, 2);\n"},
		{"a.b.c=f(1)(2);", "a.b.c = f(1)(2);\n"},
		{"print super.x;", "print super.x;\n"},
		{`print "s"+1.50;`, "print \"s\" + 1.50;\n"},
		{"fun f(){}", "fun f() {}\n"},
		{"class E{}", "class E {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := FormatWithDefaultOptions(tt.input, "expr.lox")
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatRejectsErrors(t *testing.T) {
	_, err := FormatWithDefaultOptions("print ;", "bad.lox")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Expect expression.") {
		t.Errorf("error = %v", err)
	}
}

func TestFormatOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.IndentStyle = "tabs"
	opts.PreserveComments = false

	got, err := Format("// gone\n{print 1;}", "tabs.lox", opts)
	if err != nil {
		t.Fatal(err)
	}
	if got != "{\n\tprint 1;\n}\n" {
		t.Errorf("got %q", got)
	}
}
