package output

import "github.com/charmbracelet/lipgloss"

// Color constants using ANSI 256-color palette.
// These provide a consistent color scheme across all formatters.
const (
	// ColorPrimary is used for primary elements like headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorAdded is used for added entries (green).
	ColorAdded = lipgloss.Color("42")

	// ColorModified is used for modified entries (orange/yellow).
	ColorModified = lipgloss.Color("214")

	// ColorDeleted is used for deleted entries (red).
	ColorDeleted = lipgloss.Color("196")

	// ColorMuted is used for less important or secondary text (gray).
	ColorMuted = lipgloss.Color("245")
)

// Box styles for containing grouped content.
var (
	// HeaderBox is the style for the header section naming the checkpoints.
	HeaderBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	// FooterBox is the style for the summary footer.
	FooterBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1).
			MarginTop(1)
)

// Text styles for various content types.
var (
	// TitleStyle is used for major section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// LabelStyle is used for field labels (e.g., "Checkpoint:", "Files:").
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// AddedStyle is used for added entries and diff additions.
	AddedStyle = lipgloss.NewStyle().
			Foreground(ColorAdded)

	// ModifiedStyle is used for modified entries.
	ModifiedStyle = lipgloss.NewStyle().
			Foreground(ColorModified)

	// DeletedStyle is used for deleted entries and diff deletions.
	DeletedStyle = lipgloss.NewStyle().
			Foreground(ColorDeleted)

	// MutedStyle is used for less important text.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
