package components

import (
	"github.com/Rorical/QuickAct/ui/styles"
)

// RenderInput frames the editor view.
func RenderInput(editor string, width int) string {
	return styles.InputStyle(width).Render(editor)
}
