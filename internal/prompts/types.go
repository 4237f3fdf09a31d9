package prompts

// Type categorizes a prompt within the library.
type Type string

// Prompt type values. The primary create and update paths accept only the
// first three; TypeCombined is written exclusively by the combine path,
// which deliberately bypasses the enum check.
const (
	TypeCharacter  Type = "Character"
	TypeBackground Type = "Background"
	TypePose       Type = "Pose"
	TypeCombined   Type = "Combined"
)

var types = []Type{
	TypeCharacter,
	TypeBackground,
	TypePose,
}

// Types returns the closed set of types accepted on the primary
// create and update paths.
func Types() []Type {
	return types
}
