package presenter

import "judgy/internal/core/eggs"

// Title returns the banner heading for an easter egg type.
func Title(eggType eggs.Type) string {
	switch eggType {
	case eggs.TypeHighScore:
		return "Secret high score"
	case eggs.TypePerfectScroll:
		return "Perfect scroll"
	case eggs.TypeClickMaster:
		return "Click master"
	case eggs.TypeKeyCombo:
		return "Secret combo"
	case eggs.TypeSuper:
		return "You've exceeded expectations."
	default:
		return "Easter egg"
	}
}
