/*
Shapecli is an interactive tool for shaping text with cached shape plans.

Usage:

	shapecli [-font name] [-shapers list] [-trace level]

Every line entered which is not a command is shaped with the current font,
and the resulting glyphs are displayed. Enter "help" for a list of commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/shaping/core/font"
	"github.com/npillmayer/shaping/engine/glyphing"
	"github.com/npillmayer/shaping/engine/glyphing/shapeplan"
	"github.com/pterm/pterm"
)

// tracer traces with key 'shaping.plans'
func tracer() tracing.Trace {
	return tracing.Select("shaping.plans")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load (default: Go Sans)")
	shapers := flag.String("shapers", "", "Comma separated list of preferred shapers")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":          "go",
		"trace.shaping.plans":      *tlevel,
		"trace.shaping.glyphs":     *tlevel,
		"trace.shaping.fonts":      *tlevel,
		shapeplan.ConfigShaperList: *shapers,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to the shaping CLI")
	//
	// set up REPL
	repl, err := readline.New("shape > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		repl:     repl,
		registry: shapeplan.NewDefaultRegistry(conf),
	}
	pterm.Printfln("shapers: %v", intp.registry.Names())
	if err := intp.loadFont(*fontname); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
	intp.face.Teardown()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl       *readline.Instance
	registry   *shapeplan.Registry
	face       *glyphing.Face
	font       *glyphing.Font
	features   []glyphing.Feature
	dir        glyphing.Direction // DirectionInvalid: guess from text
	shaperList []string
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) execute(line string) (bool, error) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true, nil
	case "help":
		help()
	case "font":
		return false, intp.loadFont(arg)
	case "features":
		features, err := glyphing.ParseFeatures(arg)
		if err != nil {
			return false, err
		}
		intp.features = features
		pterm.Printfln("features: %v", intp.features)
	case "dir":
		intp.dir = glyphing.ParseDirection(arg)
		pterm.Printfln("direction: %s", intp.dir)
	case "use":
		intp.shaperList = nil
		if arg != "" {
			intp.shaperList = strings.Split(arg, ",")
		}
		pterm.Printfln("preferred shapers: %v", intp.shaperList)
	case "shapers":
		pterm.Printfln("shapers in priority order: %v", intp.registry.Names())
	case "plans":
		intp.showPlans()
	default:
		intp.shape(line)
	}
	return false, nil
}

func (intp *Intp) loadFont(fontname string) error {
	var sf *font.ScalableFont
	if fontname == "" {
		sf = font.FallbackFont()
	} else {
		var err error
		if sf, err = font.LocateFont(fontname); err != nil {
			return err
		}
	}
	if intp.face != nil {
		intp.face.Teardown()
	}
	intp.face = glyphing.NewFace(sf)
	intp.font = glyphing.NewFont(intp.face, 12)
	pterm.Printfln("font: %s (%d units per em)", sf.Name(), intp.face.UnitsPerEm())
	return nil
}

func (intp *Intp) shape(text string) {
	buf := glyphing.NewBuffer()
	buf.AddString(text)
	buf.Props.Direction = intp.dir
	if !intp.registry.Shape(intp.font, buf, intp.features, intp.shaperList) {
		pterm.Error.Println("shaping failed")
		return
	}
	data := pterm.TableData{{"#", "GID", "cluster", "char", "x-adv", "y-adv", "x-off", "y-off"}}
	for i, g := range buf.Glyphs() {
		data = append(data, []string{
			strconv.Itoa(i),
			strconv.Itoa(int(g.GID)),
			strconv.Itoa(g.Cluster),
			strconv.QuoteRune(g.CodePoint),
			strconv.Itoa(int(g.XAdvance)),
			strconv.Itoa(int(g.YAdvance)),
			strconv.Itoa(int(g.XOffset)),
			strconv.Itoa(int(g.YOffset)),
		})
	}
	pterm.Printfln("%s", buf.Props)
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func (intp *Intp) showPlans() {
	plans := shapeplan.CachedPlans(intp.face)
	if len(plans) == 0 {
		pterm.Println("no cached plans")
		return
	}
	data := pterm.TableData{{"shaper", "properties", "features", "references"}}
	for _, p := range plans {
		data = append(data, []string{
			p.ShaperName(),
			p.Properties().String(),
			fmt.Sprintf("%v", p.UserFeatures()),
			strconv.Itoa(p.ReferenceCount()),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	font <name>         load a font by path or system font name
	features <list>     set features, e.g. "-liga,kern,aalt=2"
	dir <ltr|rtl|ttb|btt>
	                    set the direction; anything else guesses it from the text
	use <list>          set preferred shapers, e.g. "gotext,fallback"
	shapers             list shapers
	plans               list the plans cached for the current font
	quit                leave the CLI
	Any other input is shaped with the current settings.`)
}
