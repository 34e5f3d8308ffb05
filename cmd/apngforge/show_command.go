package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"apngforge/internal/buildspec"
)

type specView struct {
	Spec      string      `json:"spec"`
	Name      string      `json:"name"`
	Loops     uint        `json:"loops"`
	SkipFirst bool        `json:"skip_first"`
	Frames    []frameView `json:"frames"`
}

type frameView struct {
	Path    string  `json:"path"`
	Delay   string  `json:"delay"`
	Seconds float64 `json:"seconds"`
}

func newShowCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "show <spec-file>",
		Short:       "Load a build spec and display its resolved frame sequence",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := buildspec.Load(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, newSpecView(args[0], doc))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", doc.Name())
			loops := "infinite"
			if doc.Loops() > 0 {
				loops = strconv.FormatUint(uint64(doc.Loops()), 10)
			}
			fmt.Fprintf(out, "Loops:      %s\n", loops)
			fmt.Fprintf(out, "Skip first: %s\n", yesNo(doc.SkipFirst()))
			fmt.Fprintf(out, "Frames:     %d\n", doc.FrameCount())

			frames := doc.Frames()
			if len(frames) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(frames))
			for i, frame := range frames {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					frame.Path,
					frame.Delay.String(),
					strconv.FormatFloat(frame.Delay.Seconds(), 'f', -1, 64),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Frame", "Delay", "Seconds"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newSpecView(path string, doc *buildspec.Document) specView {
	frames := doc.Frames()
	view := specView{
		Spec:      path,
		Name:      doc.Name(),
		Loops:     doc.Loops(),
		SkipFirst: doc.SkipFirst(),
		Frames:    make([]frameView, 0, len(frames)),
	}
	for _, frame := range frames {
		view.Frames = append(view.Frames, frameView{
			Path:    frame.Path,
			Delay:   frame.Delay.String(),
			Seconds: frame.Delay.Seconds(),
		})
	}
	return view
}
