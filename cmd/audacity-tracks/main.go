package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Robert-J-H/audacity/project"
	"github.com/Robert-J-H/audacity/tracklist"
	"github.com/Robert-J-H/audacity/version"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	leaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	versionFlag := flag.Bool("v", false, "Print version.")
	help := flag.Bool("h", false, "Show help.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}

	retval := 0
	for _, param := range flag.Args() {
		if err := process(param); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func process(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("could not read file %v: %v", filename, err)
	}
	defer f.Close()

	l := tracklist.New()
	if err := project.Load(f, l); err != nil {
		return err
	}

	fmt.Println(render(l))
	return nil
}

func render(l *tracklist.TrackList) string {
	rows := [][]string{{"#", "ID", "KIND", "NAME", "CH", "HEIGHT", "Y", "FLAGS"}}
	leaders := []bool{false}
	for t := range l.All() {
		var flags []string
		if t.Selected() {
			flags = append(flags, "sel")
		}
		if t.Mute() {
			flags = append(flags, "mute")
		}
		if t.Solo() {
			flags = append(flags, "solo")
		}
		if t.Minimized() {
			flags = append(flags, "min")
		}
		rows = append(rows, []string{
			strconv.Itoa(t.Index()),
			strconv.FormatInt(int64(t.ID()), 10),
			t.Kind().String(),
			t.Name(),
			strconv.Itoa(l.ChannelCount(t)),
			strconv.Itoa(t.Height()),
			strconv.Itoa(t.Y()),
			strings.Join(flags, ","),
		})
		leaders = append(leaders, t.IsLeader())
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		line := strings.Join(cells, "  ")
		switch {
		case r == 0:
			line = headerStyle.Render(line)
		case leaders[r]:
			line = leaderStyle.Render(line)
		default:
			line = mutedStyle.Render(line)
		}
		b.WriteString(line)
		if r < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	fmt.Fprintf(&b, "\n%d tracks, total height %d px, extent %g..%g s",
		l.Len(), l.Height(), l.StartTime(), l.EndTime())
	return b.String()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Track list inspector. Input .yml projects, outputs their track tables.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
