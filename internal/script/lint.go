package script

import (
	"fmt"

	"github.com/rockysnow7/cyoa/pkg/story"
)

// CheckReferences statically checks every variable reference in the story
// against the initial environment: interpolation spans, guard operands and
// effect targets that name a variable no SET declared, and ordered
// comparisons whose operands cannot both be numbers.
//
// Resolution does not require this pass; a story that fails it still loads,
// and the findings surface as runtime evaluation errors instead. The
// `validate` command always reports them, and strict mode promotes them to
// fatal load errors.
func CheckReferences(st *story.Story) []error {
	var findings []error

	report := func(scene string, format string, args ...any) {
		findings = append(findings, fmt.Errorf("scene %q: %s", scene, fmt.Sprintf(format, args...)))
	}

	checkTemplate := func(scene string, what string, t story.Template) {
		for _, name := range t.Vars() {
			if _, ok := st.Initial[name]; !ok {
				report(scene, "%s references undeclared variable %q", what, name)
			}
		}
	}

	checkOperand := func(scene string, what string, o story.Operand) {
		if o.Variable == "" {
			return
		}
		if _, ok := st.Initial[o.Variable]; !ok {
			report(scene, "%s references undeclared variable %q", what, o.Variable)
		}
	}

	for _, name := range sceneNames(st) {
		scene := st.Scenes[name]
		checkTemplate(name, "narration", scene.Narration)
		for i, choice := range scene.Choices {
			what := fmt.Sprintf("choice %d", i)
			checkTemplate(name, what+" text", choice.Text)
			if choice.Guard != nil {
				checkOperand(name, what+" guard", choice.Guard.Left)
				checkOperand(name, what+" guard", choice.Guard.Right)
				if choice.Guard.Op == story.OpGreater || choice.Guard.Op == story.OpLess {
					if !staticNumber(st.Initial, choice.Guard.Left) || !staticNumber(st.Initial, choice.Guard.Right) {
						report(name, "%s compares non-number operands with %q", what, choice.Guard.Op)
					}
				}
			}
			if choice.Effect != nil {
				if _, ok := st.Initial[choice.Effect.Target]; !ok {
					report(name, "%s effect assigns to undeclared variable %q", what, choice.Effect.Target)
				}
				checkOperand(name, what+" effect", choice.Effect.Operand)
			}
		}
	}

	return findings
}

// staticNumber reports whether the operand is known to be a number given the
// initial environment. Unknown variables pass; the undeclared-variable check
// reports those separately.
func staticNumber(initial story.Environment, o story.Operand) bool {
	if o.Variable != "" {
		v, ok := initial[o.Variable]
		if !ok {
			return true
		}
		return v.Kind == story.KindNumber
	}
	return o.Literal.Kind == story.KindNumber
}
