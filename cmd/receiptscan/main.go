// Command receiptscan runs the full receipt pipeline over a directory (or an
// S3 prefix) of card-receipt images: preprocess, OCR, parse, categorize, and
// export the chosen artifacts.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/minsoo-kang/receiptkit/export"
	"github.com/minsoo-kang/receiptkit/files"
	"github.com/minsoo-kang/receiptkit/observability"
	"github.com/minsoo-kang/receiptkit/receipt"
	"github.com/minsoo-kang/receiptkit/scripting"
	"github.com/minsoo-kang/receiptkit/session"

	_ "github.com/minsoo-kang/receiptkit/ocr/tesseract"
)

type artifacts struct {
	CSV    bool
	PDF    bool
	Bundle bool
	Report bool
	Chart  bool
}

type options struct {
	dir         string
	outDir      string
	s3Bucket    string
	s3Prefix    string
	s3OutPrefix string
	s3Region    string
	languages   string
	dpi         int
	rulesPath   string
	password    string
	sortBy      string
	verbose     bool
	artifacts   artifacts
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "receiptscan: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "receiptscan: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: receiptscan [flags]\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.dir, "dir", ".", "Directory of receipt images (PNG/JPEG)")
	flag.StringVar(&opts.outDir, "out", "receiptscan_output", "Directory for exported artifacts")
	flag.StringVar(&opts.s3Bucket, "s3-bucket", "", "Read images from this S3 bucket instead of -dir")
	flag.StringVar(&opts.s3Prefix, "s3-prefix", "", "Key prefix when reading from S3")
	flag.StringVar(&opts.s3OutPrefix, "s3-out-prefix", "", "Upload artifacts under this key prefix in -s3-bucket instead of -out")
	flag.StringVar(&opts.s3Region, "s3-region", "", "AWS region for -s3-bucket")
	flag.StringVar(&opts.languages, "lang", "kor+eng", "Tesseract language codes")
	flag.IntVar(&opts.dpi, "dpi", 0, "DPI hint passed to the OCR engine (0 leaves it unset)")
	flag.StringVar(&opts.rulesPath, "rules", "", "JavaScript categorization rules file")
	flag.StringVar(&opts.password, "password", "", "Seal the zip bundle with this password")
	flag.StringVar(&opts.sortBy, "sort", "time", "Sort transactions by time, merchant or amount")
	flag.BoolVar(&opts.verbose, "v", false, "Log per-file progress")
	csvOut := flag.Bool("csv", false, "Export transactions.csv")
	pdfOut := flag.Bool("pdf", false, "Export receipts.pdf")
	bundleOut := flag.Bool("bundle", false, "Export receipts.zip with images, CSV and PDF")
	reportOut := flag.Bool("report", false, "Export report.html")
	chartOut := flag.Bool("chart", false, "Export categories.png spending chart")
	flag.Parse()

	if flag.NArg() != 0 {
		flag.Usage()
		return options{}, fmt.Errorf("unexpected arguments: %v", flag.Args())
	}
	opts.artifacts = artifacts{CSV: *csvOut, PDF: *pdfOut, Bundle: *bundleOut, Report: *reportOut, Chart: *chartOut}
	if !*csvOut && !*pdfOut && !*bundleOut && !*reportOut && !*chartOut {
		opts.artifacts = artifacts{CSV: true, PDF: true, Bundle: true, Report: true, Chart: true}
	}
	if opts.password != "" && !opts.artifacts.Bundle {
		return options{}, fmt.Errorf("-password only applies to the zip bundle")
	}
	if opts.s3OutPrefix != "" && opts.s3Bucket == "" {
		return options{}, fmt.Errorf("-s3-out-prefix requires -s3-bucket")
	}
	switch opts.sortBy {
	case "time", "merchant", "amount":
	default:
		return options{}, fmt.Errorf("unknown sort column %q", opts.sortBy)
	}
	return opts, nil
}

func run(opts options) error {
	ctx := context.Background()

	logger := observability.Logger(observability.NopLogger{})
	if opts.verbose {
		logger = observability.NewStdLogger(log.New(os.Stderr, "", log.LstdFlags))
	}

	source, sink, err := buildEndpoints(opts)
	if err != nil {
		return err
	}

	sessOpts := []session.Option{
		session.WithLanguages(opts.languages),
		session.WithLogger(logger),
	}
	if opts.dpi > 0 {
		sessOpts = append(sessOpts, session.WithDPI(opts.dpi))
	}
	if opts.rulesPath != "" {
		script, err := os.ReadFile(opts.rulesPath)
		if err != nil {
			return fmt.Errorf("read rules: %w", err)
		}
		rules, err := scripting.NewGojaRules(string(script))
		if err != nil {
			return fmt.Errorf("compile rules: %w", err)
		}
		sessOpts = append(sessOpts, session.WithRules(rules))
	}

	sess := session.New(sessOpts...)
	txns, skipped, err := sess.Process(ctx, source)
	if err != nil {
		return err
	}
	for _, serr := range skipped {
		fmt.Fprintf(os.Stderr, "receiptscan: skipped: %v\n", serr)
	}
	if len(txns) == 0 {
		return fmt.Errorf("no transactions recognized")
	}
	sortTransactions(txns, opts.sortBy)
	fmt.Printf("recognized %d transactions, total %d won\n", len(txns), txns.Total())

	return writeArtifacts(ctx, sink, txns, opts)
}

func buildEndpoints(opts options) (files.Source, files.Sink, error) {
	if opts.s3Bucket == "" {
		return &files.DirSource{Dir: opts.dir}, &files.DirSink{Dir: opts.outDir}, nil
	}
	conn := &files.S3Conn{Region: opts.s3Region}
	if err := conn.Init(); err != nil {
		return nil, nil, err
	}
	source := &files.S3Source{Conn: conn, Bucket: opts.s3Bucket, Prefix: opts.s3Prefix}
	if opts.s3OutPrefix != "" {
		return source, &files.S3Sink{Conn: conn, Bucket: opts.s3Bucket, Prefix: opts.s3OutPrefix}, nil
	}
	return source, &files.DirSink{Dir: opts.outDir}, nil
}

func sortTransactions(txns receipt.Transactions, column string) {
	switch column {
	case "merchant":
		txns.SortBy(receipt.SortByMerchant, false)
	case "amount":
		txns.SortBy(receipt.SortByAmount, true)
	default:
		txns.SortBy(receipt.SortByTime, false)
	}
}

func writeArtifacts(ctx context.Context, sink files.Sink, txns receipt.Transactions, opts options) error {
	type artifact struct {
		enabled bool
		name    string
		mime    string
		write   func(*bytes.Buffer) error
	}
	jobs := []artifact{
		{opts.artifacts.CSV, "transactions.csv", files.MIMECSV,
			func(b *bytes.Buffer) error { return export.WriteCSV(b, txns) }},
		{opts.artifacts.PDF, "receipts.pdf", files.MIMEPDF,
			func(b *bytes.Buffer) error { return export.WritePDF(b, txns) }},
		{opts.artifacts.Report, "report.html", files.MIMEHTML,
			func(b *bytes.Buffer) error { return export.WriteHTMLReport(b, txns) }},
		{opts.artifacts.Chart, "categories.png", files.MIMEPNG,
			func(b *bytes.Buffer) error { return export.WriteCategoryChart(b, txns) }},
	}
	for _, job := range jobs {
		if !job.enabled {
			continue
		}
		var buf bytes.Buffer
		if err := job.write(&buf); err != nil {
			return fmt.Errorf("%s: %w", job.name, err)
		}
		if err := sink.Save(ctx, job.name, buf.Bytes(), job.mime); err != nil {
			return fmt.Errorf("save %s: %w", job.name, err)
		}
	}

	if opts.artifacts.Bundle {
		var buf bytes.Buffer
		if err := export.WriteBundle(&buf, txns); err != nil {
			return fmt.Errorf("receipts.zip: %w", err)
		}
		name, mime, data := "receipts.zip", files.MIMEZIP, buf.Bytes()
		if opts.password != "" {
			sealed, err := export.Seal(opts.password, data)
			if err != nil {
				return fmt.Errorf("seal bundle: %w", err)
			}
			name, mime, data = "receipts.zip.sealed", files.MIMEBinary, sealed
		}
		if err := sink.Save(ctx, name, data, mime); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	return nil
}
