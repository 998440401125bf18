package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/golang/glog"

	"github.com/ironsheep/pictogram-mcp/internal/imaging"
	"github.com/ironsheep/pictogram-mcp/internal/pictogram"
	"github.com/ironsheep/pictogram-mcp/internal/server"
	"github.com/ironsheep/pictogram-mcp/internal/session"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const description = `MCP server that scans a selection of an image pixel by pixel.

Every clock pulse emits the pixel under the cursor as red, green, blue, hue,
saturation and luminance voltages. This server communicates via MCP protocol
over stdin/stdout; configure it in your MCP client.`

// CLI is the command line of pictogram-mcp.
type CLI struct {
	Version     kong.VersionFlag `short:"v" help:"Print version information and exit."`
	LogLevel    string           `help:"Log verbosity." enum:"info,debug" default:"info" env:"PICTOGRAM_MCP_LOG_LEVEL"`
	Session     string           `help:"Session file to restore on start-up." type:"path" placeholder:"FILE"`
	PreviewSize int              `help:"Default longest edge of previews in pixels." default:"330"`
}

func (c *CLI) Validate(kctx *kong.Context) error {
	if c.PreviewSize < 16 {
		return fmt.Errorf("invalid preview size %d: must be at least 16", c.PreviewSize)
	}
	return nil
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("pictogram-mcp"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("pictogram-mcp %s\n  Build time: %s\n  Git commit: %s", Version, BuildTime, GitCommit)},
	)

	if err := setupLogging(cli.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "pictogram-mcp: %v\n", err)
		os.Exit(1)
	}
	defer glog.Flush()

	glog.V(1).Infof("Pictogram MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)

	pic := pictogram.New(imaging.NewImageCache())
	if cli.Session != "" {
		restoreSession(pic, cli.Session)
	}

	srv := server.New(pic, server.Options{PreviewSize: cli.PreviewSize})
	if err := srv.Run(); err != nil {
		glog.Fatalf("Server error: %v", err)
	}
}

// setupLogging points glog at stderr (stdout is for MCP protocol). The debug
// level enables V(1), which traces every tool call.
func setupLogging(level string) error {
	args := []string{"-logtostderr"}
	if level == "debug" {
		args = append(args, "-v=1")
	}
	return flag.CommandLine.Parse(args)
}

// restoreSession applies a saved session. Failures are logged and the server
// starts with whatever could be restored.
func restoreSession(pic *pictogram.Pictogram, path string) {
	doc, err := session.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			glog.Infof("Session %s does not exist yet, starting empty", path)
			return
		}
		glog.Errorf("Failed to read session: %v", err)
		return
	}
	if err := pic.Restore(doc); err != nil {
		glog.Warningf("Session restored without image: %v", err)
		return
	}
	glog.Infof("Restored session %s (image %q)", path, pic.ImagePath())
}
