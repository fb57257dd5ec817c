package plc

// TagScope identifies the namespace a tag lives in.
type TagScope string

const (
	ScopeController TagScope = "Controller"
	ScopeProgram    TagScope = "Program"
)

// TagClass distinguishes standard from safety tags.
type TagClass string

const (
	ClassStandard TagClass = "Standard"
	ClassSafety   TagClass = "Safety"
)

// RoutineType enumerates the routine content kinds of the vendor schema.
type RoutineType string

const (
	RoutineRelayLadder             RoutineType = "RLL"
	RoutineFunctionBlock           RoutineType = "FBD"
	RoutineSequentialFunctionChart RoutineType = "SFC"
	RoutineStructuredText          RoutineType = "ST"
)

// InstructionKind classifies a parsed instruction mnemonic.
type InstructionKind string

const (
	KindInput   InstructionKind = "Input"
	KindOutput  InstructionKind = "Output"
	KindJSR     InstructionKind = "JSR"
	KindAOI     InstructionKind = "AOI"
	KindUnknown InstructionKind = "Unknown"
)

// ControlsType classifies what role a hardware module plays.
type ControlsType string

const (
	ControlsUnknown           ControlsType = "Unknown"
	ControlsPLC               ControlsType = "PLC"
	ControlsRackCommCard      ControlsType = "RackCommCard"
	ControlsEncoder           ControlsType = "Encoder"
	ControlsEthernet          ControlsType = "Ethernet"
	ControlsEthernetSwitch    ControlsType = "EthernetSwitch"
	ControlsSerial            ControlsType = "Serial"
	ControlsBlock             ControlsType = "Block"
	ControlsInputBlock        ControlsType = "InputBlock"
	ControlsOutputBlock       ControlsType = "OutputBlock"
	ControlsInputOutputBlock  ControlsType = "InputOutputBlock"
	ControlsConfigBlock       ControlsType = "ConfigBlock"
	ControlsSafetyBlock       ControlsType = "SafetyBlock"
	ControlsSafetyInputBlock  ControlsType = "SafetyInputBlock"
	ControlsSafetyOutputBlock ControlsType = "SafetyOutputBlock"
	ControlsSafetyInOutBlock  ControlsType = "SafetyInputOutputBlock"
	ControlsSafetyConfigBlock ControlsType = "SafetyConfigBlock"
	ControlsDrive             ControlsType = "Drive"
	ControlsPointIO           ControlsType = "PointIO"
	ControlsSafetyScanner     ControlsType = "SafetyScanner"
)

// controlsTypes indexes every valid ControlsType by its string form.
var controlsTypes = map[string]ControlsType{}

func init() {
	for _, ct := range []ControlsType{
		ControlsUnknown, ControlsPLC, ControlsRackCommCard, ControlsEncoder,
		ControlsEthernet, ControlsEthernetSwitch, ControlsSerial,
		ControlsBlock, ControlsInputBlock, ControlsOutputBlock,
		ControlsInputOutputBlock, ControlsConfigBlock, ControlsSafetyBlock,
		ControlsSafetyInputBlock, ControlsSafetyOutputBlock,
		ControlsSafetyInOutBlock, ControlsSafetyConfigBlock, ControlsDrive,
		ControlsPointIO, ControlsSafetyScanner,
	} {
		controlsTypes[string(ct)] = ct
	}
}

// ParseControlsType maps a string to its ControlsType, reporting whether
// the value is recognized.
func ParseControlsType(s string) (ControlsType, bool) {
	ct, ok := controlsTypes[s]
	return ct, ok
}

// ControlsTypeNames returns every recognized controls-type string.
func ControlsTypeNames() []string {
	names := make([]string, 0, len(controlsTypes))
	for name := range controlsTypes {
		names = append(names, name)
	}
	return names
}

// inputMnemonics are instructions whose operands are all reads.
var inputMnemonics = map[string]bool{
	"XIC": true, "XIO": true, "LIM": true, "MEQ": true, "EQU": true,
	"NEQ": true, "LES": true, "GRT": true, "LEQ": true, "GEQ": true,
	"IsINF": true, "IsNAN": true,
}

// outputMnemonics maps output instructions to the index of their output
// operand; -1 means the final operand.
var outputMnemonics = map[string]int{
	"OTE": -1, "OTU": -1, "OTL": -1,
	"TON": 0, "TOF": 0, "RTO": 0, "CTU": 0, "CTD": 0,
	"RES": -1, "MSG": -1, "GSV": -1, "ONS": -1, "OSR": -1, "OSF": -1,
	"IOT": -1, "CPT": 0,
	"ADD": -1, "SUB": -1, "MUL": -1, "DIV": -1, "MOD": -1,
	"SQR": -1, "NEG": -1, "ABS": -1, "MOV": -1, "MVM": -1,
	"AND": -1, "OR": -1, "XOR": -1, "NOT": -1, "SWPB": -1, "CLR": -1,
	"BTD": 2, "FAL": 4, "COP": 1, "FLL": 1, "AVE": 2, "SIZE": -1,
	"CPS": 1,
}

const mnemonicJSR = "JSR"

// OutputOperandPosition returns the output operand index for an output
// instruction; -1 means the final operand. ok is false for mnemonics
// that are not output instructions.
func OutputOperandPosition(mnemonic string) (pos int, ok bool) {
	pos, ok = outputMnemonics[mnemonic]
	return pos, ok
}

// atomicDatatypes are the built-in value types of the vendor platform.
// They are not declared in project files, so tag datatype resolution
// must not treat them as dangling references.
var atomicDatatypes = map[string]bool{
	"BIT": true, "BOOL": true, "SINT": true, "INT": true, "DINT": true,
	"LINT": true, "REAL": true, "LREAL": true, "USINT": true, "UINT": true,
	"UDINT": true, "ULINT": true, "STRING": true, "TIMER": true,
	"COUNTER": true,
}

// IsAtomicDatatype reports whether name is a platform built-in datatype.
func IsAtomicDatatype(name string) bool {
	return atomicDatatypes[name]
}
