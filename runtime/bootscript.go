package runtime

import "strings"

// bootstrapScript mirrors state.c's `extern const char pic_boot[][80]`:
// fixed-width rows of embedded Scheme source, terminated by an empty
// row, that Phase G's base-library load step would concatenate and
// hand to the (external, out-of-scope) evaluator. Each row is a
// [80]byte array, NUL-padded, exactly like the original's generated
// table -- this core carries the shape and a representative sample of
// the original bootstrap library rather than the full generated table,
// since the evaluator that would consume it is out of scope.
//
// Grounded on state.c's pic_boot declaration and its use in pic_open
// ("pic_load_cstr(pic, &pic_boot[0][0])").
var bootstrapScript = [][80]byte{
	row("(define (caar p) (car (car p)))"),
	row("(define (cadr p) (car (cdr p)))"),
	row("(define (cddr p) (cdr (cdr p)))"),
	row("(define (not x) (if x #f #t))"),
	row("(define (null? x) (if (eq? x '()) #t #f))"),
	row(""), // terminator row, matching the original's empty-string sentinel
}

func row(s string) [80]byte {
	var r [80]byte
	copy(r[:], s)
	return r
}

// DecodeBootstrapScript concatenates bootstrapScript's rows into one
// Scheme source string, stopping at the terminator row, the way
// pic_load_cstr walks pic_boot row by row until it hits an empty one.
// This core only decodes the script; loading and evaluating it is the
// evaluator's job (out of scope, spec §1).
func DecodeBootstrapScript() string {
	var b strings.Builder
	for _, r := range bootstrapScript {
		end := 0
		for end < len(r) && r[end] != 0 {
			end++
		}
		line := string(r[:end])
		if line == "" {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
