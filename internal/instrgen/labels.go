package instrgen

import (
	"fmt"

	"github.com/basiclang/basiccomp/internal/cerrors"
)

// resolveLabels is pass 3 of spec.md §4.5: build a label-name -> address
// map from every Label instruction still in the stream (Labels are not
// stripped; they remain as harmless runtime no-ops, the same way
// label_resolver.rs leaves them in place), then rewrite every
// Jump/JumpIfFalse/GoSub/OnErrorGoTo/ResumeLabel target. An unresolved
// label surviving this pass is a fatal internal error, never a user-facing
// diagnostic -- by this stage the linter has already guaranteed every
// GOTO/GOSUB/ON ERROR GOTO/RESUME target names a label that exists.
func resolveLabels(instructions []Instruction) ([]Instruction, error) {
	addr := make(map[string]int, len(instructions))
	for i, instr := range instructions {
		if instr.Op == OpLabel {
			addr[instr.LabelName] = i
		}
	}

	out := make([]Instruction, len(instructions))
	copy(out, instructions)

	for i := range out {
		switch out[i].Op {
		case OpJump, OpJumpIfFalse, OpGoSub, OpOnErrorGoTo, OpResumeLabel, OpReturn:
			if out[i].Target.Resolved || out[i].Target.Label == "" {
				continue
			}
			target, ok := addr[out[i].Target.Label]
			if !ok {
				return nil, cerrors.New(cerrors.InternalError, out[i].Pos,
					fmt.Sprintf("label %q is not defined", out[i].Target.Label))
			}
			out[i].Target = resolvedAt(target)
		}
	}

	return out, nil
}
