package plc

import "strings"

// Instruction is one parsed instruction call from rung text.
type Instruction struct {
	Mnemonic string
	Operands []string
	Kind     InstructionKind
}

// OutputOperand returns the operand an output instruction writes to.
// ok is false for non-output instructions and for instructions missing
// the operand.
func (in *Instruction) OutputOperand() (string, bool) {
	pos, ok := OutputOperandPosition(in.Mnemonic)
	if !ok || len(in.Operands) == 0 {
		return "", false
	}
	if pos == -1 {
		pos = len(in.Operands) - 1
	}
	if pos >= len(in.Operands) {
		return "", false
	}
	return in.Operands[pos], true
}

// ReadsOperand reports whether the instruction references the operand
// in a non-writing position.
func (in *Instruction) ReadsOperand(name string) bool {
	writePos := -1
	if pos, ok := OutputOperandPosition(in.Mnemonic); ok {
		if pos == -1 {
			pos = len(in.Operands) - 1
		}
		writePos = pos
	}
	for i, op := range in.Operands {
		if op == name && i != writePos {
			return true
		}
	}
	return false
}

func classifyMnemonic(mnemonic string, aoi func(string) *AddOnInstruction) InstructionKind {
	switch {
	case mnemonic == mnemonicJSR:
		return KindJSR
	case inputMnemonics[mnemonic]:
		return KindInput
	default:
		if _, ok := outputMnemonics[mnemonic]; ok {
			return KindOutput
		}
		if aoi != nil && aoi(mnemonic) != nil {
			return KindAOI
		}
		return KindUnknown
	}
}

// parseInstructions scans rung text for instruction calls. Branch
// brackets and series composition carry no operands, so the scan only
// needs to find identifier-plus-parenthesis shapes; parentheses nest
// inside operand expressions and the operand split happens at the top
// nesting level only.
func parseInstructions(text string, aoi func(string) *AddOnInstruction) []*Instruction {
	var out []*Instruction
	i := 0
	for i < len(text) {
		if !isIdentByte(text[i]) {
			i++
			continue
		}
		start := i
		for i < len(text) && isIdentByte(text[i]) {
			i++
		}
		if i >= len(text) || text[i] != '(' {
			continue
		}
		mnemonic := text[start:i]
		i++ // consume '('
		depth := 1
		argStart := i
		var operands []string
		flush := func(end int) {
			op := strings.TrimSpace(text[argStart:end])
			if op != "" {
				operands = append(operands, op)
			}
		}
		for i < len(text) && depth > 0 {
			switch text[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					flush(i)
				}
			case ',':
				if depth == 1 {
					flush(i)
					argStart = i + 1
				}
			}
			i++
		}
		out = append(out, &Instruction{
			Mnemonic: mnemonic,
			Operands: operands,
			Kind:     classifyMnemonic(mnemonic, aoi),
		})
	}
	return out
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9')
}
