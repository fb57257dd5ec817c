package plc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstructionsSeries(t *testing.T) {
	g := NewRung(0, "XIC(Start)XIO(Stop)OTE(Run);")
	instrs := g.Instructions()
	require.Len(t, instrs, 3)

	assert.Equal(t, "XIC", instrs[0].Mnemonic)
	assert.Equal(t, []string{"Start"}, instrs[0].Operands)
	assert.Equal(t, KindInput, instrs[0].Kind)

	assert.Equal(t, "XIO", instrs[1].Mnemonic)
	assert.Equal(t, KindInput, instrs[1].Kind)

	assert.Equal(t, "OTE", instrs[2].Mnemonic)
	assert.Equal(t, KindOutput, instrs[2].Kind)
}

func TestParseInstructionsBranches(t *testing.T) {
	g := NewRung(1, "[XIC(Auto),XIC(Manual)XIC(Enable)]TON(RunTimer,?,?);")
	instrs := g.Instructions()
	require.Len(t, instrs, 4)
	assert.Equal(t, "XIC", instrs[0].Mnemonic)
	assert.Equal(t, "TON", instrs[3].Mnemonic)
	assert.Equal(t, []string{"RunTimer", "?", "?"}, instrs[3].Operands)
}

func TestParseInstructionsNestedOperands(t *testing.T) {
	g := NewRung(2, "CPT(Result,(A+B)*2)MOV(Source.Member[3],Dest);")
	instrs := g.Instructions()
	require.Len(t, instrs, 2)
	assert.Equal(t, []string{"Result", "(A+B)*2"}, instrs[0].Operands)
	assert.Equal(t, []string{"Source.Member[3]", "Dest"}, instrs[1].Operands)
}

func TestInstructionsAreMemoizedUntilTextChanges(t *testing.T) {
	g := NewRung(0, "XIC(Start)OTE(Run);")
	first := g.Instructions()
	assert.Same(t, first[0], g.Instructions()[0])

	g.SetText("OTE(Halt);")
	second := g.Instructions()
	require.Len(t, second, 1)
	assert.Equal(t, "OTE", second[0].Mnemonic)
	assert.Equal(t, []string{"Halt"}, second[0].Operands)
}

func TestOutputOperandPositions(t *testing.T) {
	for _, tc := range []struct {
		text string
		want string
	}{
		{"OTE(Run)", "Run"},
		{"TON(RunTimer,?,?)", "RunTimer"},
		{"MOV(Src,Dst)", "Dst"},
		{"COP(Src,Dst,10)", "Dst"},
		{"BTD(Src,0,Dst,4,8)", "Dst"},
	} {
		g := NewRung(0, tc.text+";")
		instrs := g.Instructions()
		require.Len(t, instrs, 1, tc.text)
		out, ok := instrs[0].OutputOperand()
		require.True(t, ok, tc.text)
		assert.Equal(t, tc.want, out, tc.text)
	}

	// Input instructions have no output operand.
	g := NewRung(0, "XIC(Start);")
	_, ok := g.Instructions()[0].OutputOperand()
	assert.False(t, ok)
}

func TestRungWritesTo(t *testing.T) {
	g := NewRung(0, "XIC(Run)MOV(Speed,SpeedOut);")
	assert.True(t, g.WritesTo("SpeedOut"))
	assert.False(t, g.WritesTo("Speed"))
	assert.False(t, g.WritesTo("Run"))
}

func TestClassifyJSRAndAOIAndUnknown(t *testing.T) {
	c := NewController("Line4")
	require.NoError(t, c.AddAOI(NewAOI("Aoi_Motor")))

	p := NewProgram("MainProgram")
	require.NoError(t, c.AddProgram(p))
	r := NewRoutine("Main", RoutineRelayLadder)
	require.NoError(t, p.AddRoutine(r))

	g := NewRung(0, "JSR(Conveyor,0)Aoi_Motor(Motor1,Cmd)MYSTERY(X);")
	require.NoError(t, r.AddRung(g))

	instrs := g.Instructions()
	require.Len(t, instrs, 3)
	assert.Equal(t, KindJSR, instrs[0].Kind)
	assert.Equal(t, KindAOI, instrs[1].Kind)
	assert.Equal(t, KindUnknown, instrs[2].Kind)
}

func TestAddRungEnforcesAscendingNumbers(t *testing.T) {
	r := NewRoutine("Main", RoutineRelayLadder)
	require.NoError(t, r.AddRung(NewRung(5, "XIC(Start)OTE(Run);")))

	err := r.AddRung(NewRung(5, "OTE(Halt);"))
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))
	assert.Contains(t, err.Error(), InvariantRungOrder)

	err = r.AddRung(NewRung(2, "OTE(Halt);"))
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))

	// Gaps are fine; lookups by number stay unambiguous.
	require.NoError(t, r.AddRung(NewRung(7, "OTE(Halt);")))
	require.Len(t, r.Rungs(), 2)
	assert.Equal(t, "XIC(Start)OTE(Run);", r.Rung(5).Text)
	assert.Equal(t, "OTE(Halt);", r.Rung(7).Text)
}

func TestReadsOperandSkipsWritePosition(t *testing.T) {
	g := NewRung(0, "MOV(Speed,Speed);")
	in := g.Instructions()[0]
	// Same name in both positions still counts as a read.
	assert.True(t, in.ReadsOperand("Speed"))

	g2 := NewRung(0, "OTE(Run);")
	assert.False(t, g2.Instructions()[0].ReadsOperand("Run"))
}
