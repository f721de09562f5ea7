package banner

import (
	"github.com/charmbracelet/lipgloss"
)

var color = lipgloss.Color("42")

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(color).
		Bold(true)

	ascii := `
                           __    __                    __
   ________  ____ ______/ /_  / /_  ___  ____  _____/ /_
  / ___/ _ \/ __ '/ ___/ __ \/ __ \/ _ \/ __ \/ ___/ __ \
 (__  )  __/ /_/ / /  / / / / /_/ /  __/ / / / /__/ / / /
/____/\___/\__,_/_/  /_/ /_/_.___/\___/_/ /_/\___/_/ /_/ `

	return "\n" + style.Render(ascii) + "\n"
}
