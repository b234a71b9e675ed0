package constants

// MIDI-level constants shared by the mapper, the assembler and the SMF
// writer. Tunable musical parameters live in sonify.Config instead.
const (
	TicksPerQuarter = 960

	MelodyChannel     = 0
	BassChannel       = 1
	PercussionChannel = 9 // GM percussion, program changes are ignored here

	MelodyProgram = 0  // acoustic grand piano
	BassProgram   = 32 // acoustic bass

	// Percussion pitch span: 35 = acoustic bass drum, 81 = open triangle.
	MinPercussionPitch = 35
	MaxPercussionPitch = 81

	ClosedHiHat = 42

	NoteVelocity        = 100
	StrongPulseVelocity = 100
	WeakPulseVelocity   = 70
)
