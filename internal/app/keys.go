package app

// KeyCode identifies a decoded logical key.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyBackspace
	KeyInterrupt // ctrl+c, quits from any mode
)

// Key is one decoded key event. Rune is set only for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey builds a character key.
func RuneKey(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Normal-mode bindings.
const (
	KeyQuit        = 'q'
	KeyFilter      = '/'
	KeyCPUAlert    = 'c'
	KeyMemoryAlert = 'm'
	KeyExitAlert   = 'e'
	KeyNextProcess = 'j'
	KeyPrevProcess = 'k'
	KeyTerminate   = 't'
	KeyArmAlert    = 'a'
	KeyDisarmAlert = 'd'
	KeySortPID     = '1'
	KeySortName    = '2'
	KeySortCPU     = '3'
	KeySortMemory  = '4'
	KeySortRunTime = '5'
	KeySortStatus  = '6'
)
