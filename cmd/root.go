package cmd

import (
	"fmt"
	"strings"

	"github.com/bronystylecrazy/ultrawire/build"
	"github.com/bronystylecrazy/ultrawire/config"
	"github.com/spf13/cobra"
)

// ConfigFlag names the persistent flag selecting the configuration file.
const ConfigFlag = "config"

type Root struct {
	*cobra.Command
}

func NewRoot() *Root {
	root := &cobra.Command{
		Use:           build.Name,
		Short:         "Wire serializer normalizers and encoders from a services file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP(ConfigFlag, "c", config.DefaultFile, "configuration file")
	return &Root{Command: root}
}

func (r *Root) Register(commands ...Commander) error {
	for _, command := range commands {
		if err := r.RegisterOne(command); err != nil {
			return err
		}
	}
	return nil
}

// RegisterOne attaches c under the path given by its Use, creating intermediate
// commands as needed.
func (r *Root) RegisterOne(c Commander) error {
	if r == nil || r.Command == nil {
		return fmt.Errorf("root command is nil")
	}
	if c == nil {
		return fmt.Errorf("commander is nil")
	}
	cmd := c.Command()
	if cmd == nil {
		return fmt.Errorf("command is nil")
	}
	parts := strings.Fields(pathFromUse(cmd.Use))
	if len(parts) == 0 {
		return fmt.Errorf("command path is empty")
	}
	if len(parts) > 1 {
		fields := strings.Fields(cmd.Use)
		cmd.Use = strings.Join(fields[len(parts)-1:], " ")
	}
	parent := r.Command
	for _, part := range parts[:len(parts)-1] {
		parent = ensureSubCommand(parent, part)
	}
	parent.AddCommand(cmd)
	return nil
}

func ensureSubCommand(parent *cobra.Command, name string) *cobra.Command {
	for _, child := range parent.Commands() {
		if child.Name() == name {
			return child
		}
	}
	child := &cobra.Command{Use: name}
	parent.AddCommand(child)
	return child
}

func pathFromUse(use string) string {
	var out []string
	for _, f := range strings.Fields(use) {
		if strings.HasPrefix(f, "[") || strings.HasPrefix(f, "<") {
			break
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// ConfigPathFromArgs finds the --config value in raw process args. The config has to
// be known before the command tree exists, so cobra cannot parse it for us.
func ConfigPathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := strings.TrimSpace(args[i])
		if arg == "--" {
			break
		}
		for _, name := range []string{"--" + ConfigFlag, "-c"} {
			if value, ok := strings.CutPrefix(arg, name+"="); ok {
				return value
			}
			if arg == name && i+1 < len(args) {
				return args[i+1]
			}
		}
	}
	return ""
}
