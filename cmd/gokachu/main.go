package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/esimov/gokachu"
	"github.com/esimov/gokachu/menu"
	"github.com/esimov/gokachu/utils"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┬┌─┌─┐┌─┐┬ ┬┬ ┬
│ ┬│ │├┴┐├─┤│  ├─┤│ │
└─┘└─┘┴ ┴┴ ┴└─┘┴ ┴└─┘

Live filter camera with recording, photobooth and object tracking.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	cameraID   = flag.Int("camera", 0, "Camera device index")
	mode       = flag.String("mode", "", "Start directly in this mode (normal, gray, blur, edges, cartoon, sharpen, face, color_detect, track)")
	outDir     = flag.String("out", "captures", "Directory of the recordings and photo strips")
	fps        = flag.Float64("fps", gokachu.DefaultFPS, "Frame rate of the recordings")
	cascade    = flag.String("cascade", "", "Pigo face cascade classifier")
	target     = flag.String("target", "color", "Object followed in tracking mode (color, face)")
	trackerAlg = flag.String("tracker", "template", "Tracker used in tracking mode (template, mil)")
	poll       = flag.Duration("poll", gokachu.DefaultPoll, "Key poll timeout of the session loop")
	dbPath     = flag.String("db", "", "Sqlite capture catalog (disabled when empty)")
	serveAddr  = flag.String("serve", "", "Serve the capture gallery on this address (requires -db)")
	width      = flag.Int("width", 640, "Requested camera frame width")
	height     = flag.Int("height", 480, "Requested camera frame height")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	os.Exit(run())
}

// run wires the application and returns the process exit code. Every
// component opened here is released before it returns.
func run() int {
	cfg := config{
		Camera:  *cameraID,
		OutDir:  *outDir,
		FPS:     *fps,
		Cascade: *cascade,
		Target:  *target,
		Tracker: *trackerAlg,
		Poll:    *poll,
		DBPath:  *dbPath,
		Serve:   *serveAddr,
		Width:   *width,
		Height:  *height,
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ GOKACHU", utils.StatusMessage),
		utils.DecorateText("is loading...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*200, true)
	spinner.Start()

	a, err := newApp(cfg)
	spinner.Stop()
	if err != nil {
		printError(err)
		return 1
	}
	defer a.close()

	if *mode != "" {
		m, err := gokachu.ParseMode(*mode)
		if err != nil {
			printError(err)
			return 2
		}
		if err := a.runSession(m); err != nil {
			printError(err)
			return 1
		}
		return 0
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		printError(errors.New("the interactive menu needs a terminal, use the -mode flag instead"))
		return 2
	}
	if err := a.menuLoop(); err != nil {
		printError(err)
		return 1
	}
	return 0
}

func printError(err error) {
	log.Println(utils.DecorateText("[ERROR] "+err.Error(), utils.ErrorMessage))
}

// menuLoop shows the menu until the user exits. After a photobooth run the
// photobooth filter list is shown again.
func (a *app) menuLoop() error {
	next := menu.New()
	for {
		choice, err := menu.Run(next)
		if err != nil {
			return err
		}
		next = menu.New()

		switch choice.Action {
		case menu.ActionExit:
			log.Println(utils.DecorateText("Goodbye!", utils.SuccessMessage))
			return nil
		case menu.ActionSession:
			if err := a.runSession(choice.Mode); err != nil {
				printError(err)
			}
		case menu.ActionPhotobooth:
			if err := a.runPhotobooth(choice.Mode); err != nil {
				printError(err)
			}
			next = menu.NewBooth()
		}
	}
}
