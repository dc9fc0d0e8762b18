// Command s3util is a thin CLI over the aws-utils S3 helpers: key listing,
// conditional object sync, and file/directory uploads.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	logsetup "github.com/dendrasystems/aws-utils/internal/log"
	"github.com/dendrasystems/aws-utils/s3"
)

func main() {
	logsetup.InitLogger()

	app := &cli.Command{
		Name:  "s3util",
		Usage: "utilities for working with S3",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "region",
				Usage: "AWS region (defaults to the credential chain)",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "custom S3 endpoint (e.g. LocalStack)",
			},
			&cli.BoolFlag{
				Name:  "path-style",
				Usage: "use path-style addressing (S3-compatible stores)",
			},
		},
		Commands: []*cli.Command{
			lsCommand(),
			syncCommand(),
			putCommand(),
			pushCommand(),
			urlCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds an s3.Client from the global flags.
func newClient(ctx context.Context, cmd *cli.Command) (*s3.Client, error) {
	var opts []s3.Option
	if region := cmd.String("region"); region != "" {
		opts = append(opts, s3.WithRegion(region))
	}
	if endpoint := cmd.String("endpoint"); endpoint != "" {
		opts = append(opts, s3.WithEndpoint(endpoint))
	}
	if cmd.Bool("path-style") {
		opts = append(opts, s3.WithForcePathStyle(true))
	}
	return s3.New(ctx, opts...)
}

// parseURLArg parses the positional argument at index as an S3 URL.
func parseURLArg(cmd *cli.Command, index int, what string) (s3.URL, error) {
	raw := cmd.Args().Get(index)
	if raw == "" {
		return s3.URL{}, fmt.Errorf("missing %s argument", what)
	}
	loc, err := s3.ParseURL(raw)
	if err != nil {
		return s3.URL{}, fmt.Errorf("invalid %s: %w", what, err)
	}
	return loc, nil
}

func lsCommand() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list keys under a prefix",
		UsageText: "s3util ls s3://bucket/prefix [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max-keys",
				Aliases: []string{"m"},
				Usage:   "limit the number of keys listed",
			},
			&cli.BoolFlag{
				Name:    "long",
				Aliases: []string{"l"},
				Usage:   "show size and last-modified time",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			loc, err := parseURLArg(cmd, 0, "s3 url")
			if err != nil {
				return err
			}

			client, err := newClient(ctx, cmd)
			if err != nil {
				return err
			}

			var listOpts []s3.ListOption
			if maxKeys := int64(cmd.Int("max-keys")); maxKeys > 0 {
				listOpts = append(listOpts, s3.WithMaxKeys(maxKeys))
			}

			log.WithFields(log.Fields{
				"bucket": loc.Bucket,
				"prefix": loc.Key,
			}).Debug("listing keys")

			count := 0
			keys, iterErr := client.IterKeys(ctx, loc.Bucket, loc.Key, listOpts...)
			for obj := range keys {
				if cmd.Bool("long") {
					fmt.Printf("%s  %10s  %s\n",
						obj.LastModified.Format("2006-01-02 15:04:05"),
						humanize.Bytes(uint64(obj.Size)),
						obj.Key,
					)
				} else {
					fmt.Println(obj.Key)
				}
				count++
			}
			if err := iterErr(); err != nil {
				return err
			}

			log.WithField("count", count).Debug("listing complete")
			return nil
		},
	}
}

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "copy an object only if the source is newer",
		UsageText: "s3util sync s3://src-bucket/key s3://dst-bucket/key",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			src, err := parseURLArg(cmd, 0, "source url")
			if err != nil {
				return err
			}
			dst, err := parseURLArg(cmd, 1, "destination url")
			if err != nil {
				return err
			}

			client, err := newClient(ctx, cmd)
			if err != nil {
				return err
			}

			copied, err := client.SyncObject(ctx, src, dst)
			if err != nil {
				return err
			}
			if copied {
				log.WithFields(log.Fields{
					"src": src.String(),
					"dst": dst.String(),
				}).Info("copied")
				fmt.Printf("copied %s -> %s\n", src, dst)
			} else {
				fmt.Printf("%s is up to date\n", dst)
			}
			return nil
		},
	}
}

func putCommand() *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "upload a single file",
		UsageText: "s3util put <file> s3://bucket/key [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "content-type",
				Usage: "Content-Type for the object (detected if unset)",
			},
			&cli.StringFlag{
				Name:  "content-disposition",
				Usage: "Content-Disposition for the object",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			file := cmd.Args().Get(0)
			if file == "" {
				return fmt.Errorf("missing file argument")
			}
			dst, err := parseURLArg(cmd, 1, "destination url")
			if err != nil {
				return err
			}

			client, err := newClient(ctx, cmd)
			if err != nil {
				return err
			}

			var uploadOpts []s3.UploadOption
			if ct := cmd.String("content-type"); ct != "" {
				uploadOpts = append(uploadOpts, s3.WithContentType(ct))
			}
			if cd := cmd.String("content-disposition"); cd != "" {
				uploadOpts = append(uploadOpts, s3.WithContentDisposition(cd))
			}

			result, err := client.UploadFile(ctx, dst.Bucket, dst.Key, file, uploadOpts...)
			if err != nil {
				return err
			}

			fmt.Printf("uploaded %s (%s) in %v\n",
				dst, humanize.Bytes(uint64(result.Size)), result.Duration.Round(time.Millisecond))
			return nil
		},
	}
}

func pushCommand() *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "upload a directory tree",
		UsageText: "s3util push <dir> s3://bucket/prefix [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   "number of concurrent uploads",
				Value:   20,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().Get(0)
			if dir == "" {
				return fmt.Errorf("missing directory argument")
			}
			dst, err := parseURLArg(cmd, 1, "destination url")
			if err != nil {
				return err
			}

			client, err := newClient(ctx, cmd)
			if err != nil {
				return err
			}

			result, err := client.UploadDir(ctx, dst.Bucket, dst.Key, dir,
				s3.WithUploadConcurrency(int(cmd.Int("concurrency"))))
			if err != nil {
				return err
			}

			for _, uploadErr := range result.Errors {
				log.WithFields(log.Fields{
					"path": uploadErr.Path,
					"key":  uploadErr.Key,
				}).Error(uploadErr.Message)
			}

			fmt.Printf("uploaded %d files (%s) in %v\n",
				result.FilesUploaded,
				humanize.Bytes(uint64(result.BytesUploaded)),
				result.Duration.Round(time.Millisecond),
			)
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d files failed to upload", len(result.Errors))
			}
			return nil
		},
	}
}

func urlCommand() *cli.Command {
	return &cli.Command{
		Name:      "url",
		Usage:     "parse an S3 URL and print its parts",
		UsageText: "s3util url <s3-or-https-url> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "https-region",
				Usage: "also print the https:// form for this region",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			loc, err := parseURLArg(cmd, 0, "url")
			if err != nil {
				return err
			}

			fmt.Printf("bucket: %s\n", loc.Bucket)
			fmt.Printf("key:    %s\n", loc.Key)
			fmt.Printf("s3:     %s\n", loc)
			if region := cmd.String("https-region"); region != "" {
				fmt.Printf("https:  %s\n", loc.HTTPSURL(region))
			}
			return nil
		},
	}
}
