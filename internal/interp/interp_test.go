package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"cascade/internal/diag"
	"cascade/internal/driver"
	"cascade/internal/testkit"
)

// run выполняет исходник и возвращает результат + stdout.
func run(t *testing.T, src string) (*driver.RunResult, string) {
	t.Helper()
	var out bytes.Buffer
	result, err := driver.RunVirtual("test.casc", []byte(src), driver.RunOptions{Out: &out})
	if err != nil {
		t.Fatalf("driver error: %v", err)
	}
	if result.Parse.Bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", result.Parse.Bag.Items())
	}
	return result, out.String()
}

func runOK(t *testing.T, src string) (*driver.RunResult, string) {
	t.Helper()
	result, out := run(t, src)
	if result.RuntimeErr != nil {
		t.Fatalf("unexpected runtime error: %s", result.RuntimeErr.Msg)
	}
	if err := testkit.CheckHeapInvariants(result.Heap); err != nil {
		t.Fatalf("heap invariants violated: %v", err)
	}
	return result, out
}

// Сценарий 1: optional back-edge — родитель выживает, поле обнуляется.
func TestScenarioOptionalNextSurvives(t *testing.T) {
	_, out := runOK(t, `
struct N { mandatory id, optional next, }
let a = new N { id: 1 }
let b = new N { id: 2 }
a.next = b
b.id = null
print a.id
print a.next
`)
	if out != "1\nnull\n" {
		t.Errorf("output = %q, want %q", out, "1\nnull\n")
	}
}

// Сценарий 2: переприсваивание локальной переменной не трогает объект —
// локальные переменные не отслеживаются в reverse index.
func TestScenarioLocalRebindKeepsObjectAlive(t *testing.T) {
	result, out := runOK(t, `
struct N { mandatory head, }
let a = new N { }
let b = new N { }
a.head = b
b = null
print a.head
`)
	if !strings.HasPrefix(out, "[Object#") {
		t.Errorf("a.head must still reference a live object, printed %q", out)
	}
	if result.Heap.NumObjects() != 2 {
		t.Errorf("live objects = %d, want 2", result.Heap.NumObjects())
	}
}

// Сценарий 3: mandatory next — каскад через back-edge убивает и a.
func TestScenarioMandatoryNextCascades(t *testing.T) {
	result, _ := runOK(t, `
struct N { mandatory id, mandatory next, }
let a = new N { id: 1 }
let b = new N { id: 2 }
a.next = b
b.id = null
`)
	if result.Heap.NumObjects() != 0 {
		t.Errorf("live objects = %d, want 0 (cascade through mandatory back-edge)", result.Heap.NumObjects())
	}
}

// Сценарий 4: цикл из mandatory ссылок гибнет целиком.
func TestScenarioMandatoryCycle(t *testing.T) {
	result, _ := runOK(t, `
struct C { mandatory link, }
let x = new C { }
let y = new C { }
x.link = y
y.link = x
x.link = null
`)
	if result.Heap.NumObjects() != 0 {
		t.Errorf("live objects = %d, want 0 (cycle destroyed)", result.Heap.NumObjects())
	}
}

// Сценарий 5: массив переживает каскад элемента, length не меняется.
func TestScenarioArrayElementNulledArraySurvives(t *testing.T) {
	_, out := runOK(t, `
struct N { mandatory id, }
let a = new N { id: 1 }
let b = new N { id: 2 }
let arr = [a, b]
a.id = null
print arr[0]
print arr[1].id
print arr.length
`)
	if out != "null\n2\n2\n" {
		t.Errorf("output = %q, want %q", out, "null\n2\n2\n")
	}
}

// Сценарий 6: нетипизированный литерал — null очищает без каскада.
func TestScenarioUntypedLiteralClearsWithoutCascade(t *testing.T) {
	_, out := runOK(t, `
let o = { x: 1 }
o.x = null
print o
print o.x
`)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "[Object#") || lines[1] != "null" {
		t.Errorf("output = %q", out)
	}
}

func TestFunctionsAndControlFlow(t *testing.T) {
	_, out := runOK(t, `
fn fib(n) {
	if n < 2 {
		return n
	}
	return fib(n - 1) + fib(n - 2)
}
let i = 0
let acc = 0
while i < 10 {
	acc = acc + fib(i)
	i = i + 1
}
print acc
`)
	if out != "88\n" {
		t.Errorf("output = %q, want %q", out, "88\n")
	}
}

func TestValuePrinting(t *testing.T) {
	_, out := runOK(t, `
print "hi"
print 1.5
print 1e3
print true
print false
print null
print "a" + "b"
print 2 + 3 * 4
print !null
`)
	want := "\"hi\"\n1.5\n1000\ntrue\nfalse\nnull\n\"ab\"\n14\ntrue\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestArrayWritesExtendLength(t *testing.T) {
	_, out := runOK(t, `
let arr = [1]
arr[4] = 5
print arr.length
print arr[2]
print arr[4]
push(arr, 7)
print arr.length
print arr[5]
`)
	want := "5\nnull\n5\n6\n7\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestAssertBuiltin(t *testing.T) {
	_, _ = runOK(t, `assert(1 < 2)`)

	result, _ := run(t, `assert(1 > 2, "math is broken")`)
	if result.RuntimeErr == nil || result.RuntimeErr.Code != diag.RunAssertionFailure {
		t.Fatalf("expected assertion failure, got %+v", result.RuntimeErr)
	}
	if !strings.Contains(result.RuntimeErr.Msg, "math is broken") {
		t.Errorf("assertion message = %q", result.RuntimeErr.Msg)
	}
}

func TestReferenceError(t *testing.T) {
	result, _ := run(t, `print nope`)
	if result.RuntimeErr == nil || result.RuntimeErr.Code != diag.RunReferenceError {
		t.Fatalf("expected reference error, got %+v", result.RuntimeErr)
	}
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"field access on non-object", `let x = 1 print x.y`},
		{"indexing of non-array", `let x = 1 print x[0]`},
		{"indexing a non-array object", `let o = { a: 1 } print o[0]`},
		{"call of non-callable", `let x = 1 x(2)`},
		{"arithmetic on strings", `let x = "a" - "b"`},
		{"bad array index", `let arr = [1] print arr[-1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := run(t, tt.src)
			if result.RuntimeErr == nil || result.RuntimeErr.Code != diag.RunTypeError {
				t.Fatalf("expected type error, got %+v", result.RuntimeErr)
			}
		})
	}
}

func TestWriteToDeadObjectIsSilentNoOp(t *testing.T) {
	_, out := runOK(t, `
struct N { mandatory id, }
let a = new N { id: 1 }
let alias = a
a.id = null
alias.id = 5
print alias.id
`)
	if out != "null\n" {
		t.Errorf("output = %q, want %q (dead writes are silent no-ops)", out, "null\n")
	}
}

func TestConstructionOmittingMandatoryFieldIsLegal(t *testing.T) {
	result, out := runOK(t, `
struct N { mandatory id, }
let a = new N { }
print a.id
`)
	if out != "null\n" {
		t.Errorf("output = %q, want %q", out, "null\n")
	}
	if result.Heap.NumObjects() != 1 {
		t.Errorf("live objects = %d, want 1", result.Heap.NumObjects())
	}
}

func TestChainedCascadeThroughThreeObjects(t *testing.T) {
	result, _ := runOK(t, `
struct N { mandatory link, optional tag, }
let a = new N { }
let b = new N { }
let c = new N { }
b.link = a
c.link = b
a.link = null
`)
	// a.link = null: у a поле link mandatory и не установлено... запись null
	// в mandatory поле убивает a, каскад через (b, link) и (c, link).
	if result.Heap.NumObjects() != 0 {
		t.Errorf("live objects = %d, want 0", result.Heap.NumObjects())
	}
}

func TestFunctionsCannotBeStoredInFields(t *testing.T) {
	result, _ := run(t, `
fn f() { return 1 }
let o = { a: 1 }
o.a = f
`)
	if result.RuntimeErr == nil || result.RuntimeErr.Code != diag.RunTypeError {
		t.Fatalf("expected type error for storing function in field, got %+v", result.RuntimeErr)
	}
}

func TestShadowedBuiltinIsCallable(t *testing.T) {
	_, out := runOK(t, `
fn push(a, b) {
	return a + b
}
print push(1, 2)
`)
	if out != "3\n" {
		t.Errorf("output = %q, want %q (user fn shadows builtin)", out, "3\n")
	}
}
