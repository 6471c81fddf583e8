package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/oledvideo/pkg/display/term"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell     *ishell.Shell
	Inspector *Inspector
}

const (
	shellKey       = "$shell"
	unloadedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	streamPath string

	// commands
	commands = []*ishell.Cmd{
		&LoadCmd,
		&NextCmd,
		&ShowCmd,
		&StateCmd,
		&ResetCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.StringVar(&streamPath, "asset", streamPath, "Stream to load on start, empty for none.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(inspector *Inspector) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:     ishell.New(),
		Inspector: inspector,
	}
	s.Shell.Set(shellKey, s)
	s.updatePrompt()
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeLoaded wraps command func requires a loaded stream.
func MustBeLoaded(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if len(ShellFrom(c).Inspector.Stream) == 0 {
			c.Err(ErrNoStream)
			return
		}
		fn(c)
	}
}

// Prompt returns the prompt reflecting the inspector position.
func (s *Shell) Prompt() string {
	if s.Inspector.Path == "" {
		return unloadedPrompt
	}
	return fmt.Sprintf("%s#%d > ", s.Inspector.Path, s.Inspector.FrameIndex)
}

func (s *Shell) updatePrompt() {
	s.Shell.SetPrompt(s.Prompt())
}

// PrintState prints the inspector state.
func (s *Shell) PrintState(c *ishell.Context) {
	state := s.Inspector.State()
	if s.OutputJSON {
		out, err := json.Marshal(&state)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Printf("%s: %d bytes, %d frames, %d trailing bytes\n",
		state.Path, state.Size, state.Frames, state.Trailing)
	c.Printf("frame #%d at %d, %s, %d bytes written\n",
		state.FrameIndex, state.Position, state.DecodeState, state.BytesWritten)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// LoadCmd loads a stream, the embedded demo without PATH.
	LoadCmd = ishell.Cmd{
		Name:    "load",
		Aliases: []string{"l"},
		Help:    "[PATH]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var path string
			if len(c.Args) > 0 {
				path = c.Args[0]
			}
			if err := s.Inspector.Load(path); err != nil {
				c.Err(err)
				return
			}
			s.updatePrompt()
			s.PrintState(c)
		},
	}

	// NextCmd decodes the next frames.
	NextCmd = ishell.Cmd{
		Name:    "next",
		Aliases: []string{"n"},
		Help:    "[COUNT]",
		Func: MustBeLoaded(func(c *ishell.Context) {
			s := ShellFrom(c)
			count := 1
			if len(c.Args) > 0 {
				val, err := strconv.Atoi(c.Args[0])
				if err != nil || val <= 0 {
					c.Err(fmt.Errorf("invalid COUNT: %s", c.Args[0]))
					return
				}
				count = val
			}
			n, err := s.Inspector.Next(count)
			if err != nil {
				c.Err(err)
				return
			}
			s.updatePrompt()
			if n == 0 {
				c.Println("No complete frame")
				return
			}
			if !s.OutputJSON {
				c.Print(term.Text(&s.Inspector.Frame))
			}
			s.PrintState(c)
		}),
	}

	// ShowCmd prints the current frame.
	ShowCmd = ishell.Cmd{
		Name:    "show",
		Aliases: []string{"s"},
		Help:    "",
		Func: MustBeLoaded(func(c *ishell.Context) {
			c.Print(term.Text(&ShellFrom(c).Inspector.Frame))
		}),
	}

	// StateCmd prints the decoder state.
	StateCmd = ishell.Cmd{
		Name:    "state",
		Aliases: []string{"st"},
		Help:    "",
		Func: MustBeLoaded(func(c *ishell.Context) {
			ShellFrom(c).PrintState(c)
		}),
	}

	// ResetCmd rewinds to the beginning of the stream.
	ResetCmd = ishell.Cmd{
		Name:    "reset",
		Aliases: []string{"r"},
		Help:    "",
		Func: MustBeLoaded(func(c *ishell.Context) {
			s := ShellFrom(c)
			s.Inspector.Reset()
			s.updatePrompt()
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	inspector := NewInspector()
	if streamPath != "" {
		if err := inspector.Load(streamPath); err != nil {
			log.Fatalf("load %q failed: %v", streamPath, err)
		}
	}
	New(inspector).Run(flag.Args()...)
}
