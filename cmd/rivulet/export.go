package main

import (
	"context"
	"sort"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/rivulet-dev/rivulet/pkg/export"
	"github.com/rivulet-dev/rivulet/pkg/render"
)

func exportCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		region string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render all pages and upload them to S3",
		Long: `Render every page to static HTML and upload the results
to an S3 bucket, one object per route.

The destination comes from rivulet.json or from flags. AWS
credentials are resolved the usual way (environment, shared
config, instance role).

Examples:
  rivulet export
  rivulet export --bucket=my-site --prefix=v2/
  rivulet export --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), bucket, prefix, region)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "S3 bucket (default from rivulet.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from rivulet.json)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from rivulet.json)")

	return cmd
}

func runExport(ctx context.Context, bucket, prefix, region string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if bucket != "" {
		cfg.Export.Bucket = bucket
	}
	if prefix != "" {
		cfg.Export.Prefix = prefix
	}
	if region != "" {
		cfg.Export.Region = region
	}
	if err := cfg.ValidateExport(); err != nil {
		return err
	}

	var awsOpts []func(*awsconfig.LoadOptions) error
	if cfg.Export.Region != "" {
		awsOpts = append(awsOpts, awsconfig.WithRegion(cfg.Export.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		errorMsg("could not load AWS configuration")
		return err
	}
	client := s3.NewFromConfig(awsCfg)

	e := export.NewExporter(client, cfg.Export.Bucket,
		export.WithPrefix(cfg.Export.Prefix),
		export.WithRendererConfig(render.RendererConfig{
			Pretty: cfg.Render.Pretty,
			Indent: cfg.Render.Indent,
		}),
	)

	pages := sitePages()
	printBanner()
	info("exporting %d pages to s3://%s/%s", len(pages), cfg.Export.Bucket, cfg.Export.Prefix)

	paths := make([]string, 0, len(pages))
	for path := range pages {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := e.ExportPage(ctx, path, pages[path]); err != nil {
			errorMsg("export %s failed", path)
			return err
		}
		success("%s → %s", path, cfg.Export.Prefix+export.PathKey(path))
	}

	success("export complete")
	return nil
}
