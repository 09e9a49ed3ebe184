package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"hackasm/pkg/cpu"
	"hackasm/pkg/utils"
)

// Hack key codes for keys without a printable character.
const (
	keyNewline   uint16 = 128
	keyBackspace uint16 = 129
	keyLeft      uint16 = 130
	keyUp        uint16 = 131
	keyRight     uint16 = 132
	keyDown      uint16 = 133
	keyHome      uint16 = 134
	keyEnd       uint16 = 135
	keyPageUp    uint16 = 136
	keyPageDown  uint16 = 137
	keyInsert    uint16 = 138
	keyDelete    uint16 = 139
	keyEscape    uint16 = 140
	keyF1        uint16 = 141
)

var specialKeys = map[ebiten.Key]uint16{
	ebiten.KeyEnter:      keyNewline,
	ebiten.KeyBackspace:  keyBackspace,
	ebiten.KeyArrowLeft:  keyLeft,
	ebiten.KeyArrowUp:    keyUp,
	ebiten.KeyArrowRight: keyRight,
	ebiten.KeyArrowDown:  keyDown,
	ebiten.KeyHome:       keyHome,
	ebiten.KeyEnd:        keyEnd,
	ebiten.KeyPageUp:     keyPageUp,
	ebiten.KeyPageDown:   keyPageDown,
	ebiten.KeyInsert:     keyInsert,
	ebiten.KeyDelete:     keyDelete,
	ebiten.KeyEscape:     keyEscape,
	ebiten.KeyF1:         keyF1,
	ebiten.KeyF2:         keyF1 + 1,
	ebiten.KeyF3:         keyF1 + 2,
	ebiten.KeyF4:         keyF1 + 3,
	ebiten.KeyF5:         keyF1 + 4,
	ebiten.KeyF6:         keyF1 + 5,
	ebiten.KeyF7:         keyF1 + 6,
	ebiten.KeyF8:         keyF1 + 7,
	ebiten.KeyF9:         keyF1 + 8,
	ebiten.KeyF10:        keyF1 + 9,
	ebiten.KeyF11:        keyF1 + 10,
	ebiten.KeyF12:        keyF1 + 11,
}

type Game struct {
	vm             *cpu.CPU
	cyclesPerFrame int
	showStatus     bool
	screenImg      *ebiten.Image // reused 512×256 canvas

	// heldChar is the last printable character typed while keys remain down.
	heldChar uint16
	pressed  []ebiten.Key
}

// keyCode maps the host keyboard state to the value the Hack keyboard
// register should hold this frame. Zero means no key.
func (g *Game) keyCode(typed []rune, pressed []ebiten.Key) uint16 {
	if len(pressed) == 0 {
		g.heldChar = 0
		return 0
	}

	for _, k := range pressed {
		if code, ok := specialKeys[k]; ok {
			return code
		}
	}

	for _, r := range typed {
		if r > 0 && r < 128 {
			g.heldChar = uint16(r)
		}
	}
	return g.heldChar
}

func (g *Game) Update() error {
	g.pressed = inpututil.AppendPressedKeys(g.pressed[:0])
	code := g.keyCode(ebiten.AppendInputChars(nil), g.pressed)
	if code == 0 {
		g.vm.ReleaseKey()
	} else {
		g.vm.PushKey(code)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && ebiten.IsKeyPressed(ebiten.KeyControl) {
		g.showStatus = !g.showStatus
	}

	g.vm.RunCycles(g.cyclesPerFrame)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screenImg == nil {
		g.screenImg = ebiten.NewImage(cpu.ScreenWidth, cpu.ScreenHeight)
	}

	g.screenImg.WritePixels(g.vm.GetFramebufferRGBA())
	screen.DrawImage(g.screenImg, nil)

	if g.showStatus {
		state := "running"
		if g.vm.Halted {
			state = "halted"
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s PC=%d A=%d D=%d KBD=%d", state, g.vm.PC, g.vm.A, int16(g.vm.D), g.vm.Read(cpu.KBD)))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cpu.ScreenWidth, cpu.ScreenHeight
}

func main() {
	cyclesPerFrame := flag.Int("cycles", 200_000, "instructions executed per frame")
	scale := flag.Int("scale", 2, "window scale factor")
	showStatus := flag.Bool("status", false, "overlay CPU registers (toggle with Ctrl+Tab)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: desktop [flags] <program.asm|program.hack>")
		os.Exit(2)
	}

	fullPath, _, err := utils.GetPathInfo(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to resolve path: %v", err)
	}
	words, _, err := utils.LoadProgram(fullPath)
	if err != nil {
		log.Fatalf("Failed to load program: %v", err)
	}

	vm := cpu.NewCPU()
	if err := vm.LoadROM(words); err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cpu.ScreenWidth**scale, cpu.ScreenHeight**scale)
	ebiten.SetWindowTitle("Hack - " + flag.Arg(0))

	game := &Game{vm: vm, cyclesPerFrame: *cyclesPerFrame, showStatus: *showStatus}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
