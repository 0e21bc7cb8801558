package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/dirhook/pkg/cli/config"
	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/infra/fs"
)

func cmdTree() *cli.Command {
	var projectCfg config.Project

	return &cli.Command{
		Name:  "tree",
		Usage: "Walk the project once and print what the server would expose",
		Flags: projectCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := loadProject(c, &projectCfg, &config.GitHub{}, &config.Sync{}); err != nil {
				return err
			}

			walker, err := fs.NewWalker(projectCfg.RootDir, projectCfg.Exclusions)
			if err != nil {
				return err
			}

			snapshot, err := walker.Walk(ctx)
			if err != nil {
				return err
			}

			printTree(os.Stdout, snapshot)
			return nil
		},
	}
}

var (
	folderColor = color.New(color.FgCyan, color.Bold)
	binaryColor = color.New(color.FgYellow)
	sizeColor   = color.New(color.Faint)
	totalColor  = color.New(color.FgGreen, color.Bold)
)

func printTree(w io.Writer, snapshot *model.Snapshot) {
	for _, folder := range snapshot.Folders {
		folderColor.Fprintf(w, "%s/\n", folder.Folder)
		for _, file := range folder.Files {
			name := file.Name
			if file.Encoding == model.EncodingBase64 {
				name = binaryColor.Sprint(name)
			}
			fmt.Fprintf(w, "  %s %s %s\n", name, sizeColor.Sprintf("(%d bytes, %s)", file.Size, file.Encoding), file.MimeType)
		}
	}

	meta := snapshot.Metadata()
	totalColor.Fprintf(w, "%s: %d folders, %d files, %d bytes served\n",
		meta.ProjectName, len(snapshot.Folders), meta.TotalFiles, meta.TotalSizeInBytes)
}
