// gwasbetas derives BETA and ZSCORE from GWAS summary statistics, optionally
// restricted to and oriented against a prediction model's SNPs.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwasbetas"
	"github.com/carbocation/gwasbetas/columns"
	_ "github.com/carbocation/gwasbetas/compileinfoprint"
	"github.com/carbocation/gwasbetas/gwas"
	"github.com/carbocation/gwasbetas/harmonize"
	"github.com/carbocation/gwasbetas/model"
)

var client *storage.Client

func main() {
	var (
		gwasFolder      string
		filePattern     string
		separator       string
		skipUntilHeader string
		modelPath       string
		outputFile      string
		outputFolder    string
		layout          string
		split           bool
		throw           bool
		quiet           bool
	)

	columnFlags := make(map[columns.Role]*string)
	for _, role := range columns.AllRoles() {
		columnFlags[role] = flag.String(columnFlagName(role), "", fmt.Sprintf("Name of the %s column in the GWAS files", role))
	}

	flag.StringVar(&gwasFolder, "gwas-folder", "", "Folder containing the GWAS summary statistics. May be a google storage URL (gs://)")
	flag.StringVar(&filePattern, "gwas-file-pattern", "", "Optional: regular expression that the names of GWAS files in --gwas-folder must match. Matches are read in lexical order")
	flag.StringVar(&separator, "separator", "", "Optional: column separator. One of tab, comma, space (runs of whitespace), or a single character. Detected from the header if unset")
	flag.StringVar(&skipUntilHeader, "skip-until-header", "", "Optional: discard lines until one equals this exactly; that line is the header")
	flag.StringVar(&modelPath, "model-db-path", "", "Optional: prediction model to align to. A sqlite .db with a weights table, or a tab-delimited file with rsid, eff_allele and ref_allele columns")
	flag.StringVar(&outputFile, "output", "", "Path for the aggregate output. Defaults to stdout")
	flag.StringVar(&outputFolder, "output-folder", "", "Folder for per-input outputs when --split is set")
	flag.StringVar(&layout, "layout", "", fmt.Sprint("Optional: preset column layout. Explicit column flags override it. Options include: ", columns.LayoutNames()))
	flag.BoolVar(&split, "split", false, "Write one output per GWAS file into --output-folder instead of one aggregate table")
	flag.BoolVar(&throw, "throw", true, "Abort on the first file that cannot be read or derived. If false, such files are skipped and reported")
	flag.BoolVar(&quiet, "quiet", false, "Suppress progress logging")
	flag.Parse()

	if quiet {
		log.SetOutput(ioutil.Discard)
	}

	if gwasFolder == "" {
		flag.Usage()
		log.Fatalln("Must specify --gwas-folder")
	}

	if split && outputFolder == "" {
		flag.Usage()
		log.Fatalln("--split requires --output-folder")
	}

	if !split && outputFolder != "" {
		log.Fatalln("--output-folder is only used with --split; use --output for aggregate output")
	}

	roles, sep, err := declaredColumns(layout, columnFlags)
	if err != nil {
		log.Fatalln(err)
	}
	if separator != "" {
		if sep, err = parseSeparator(separator); err != nil {
			log.Fatalln(err)
		}
	}

	for _, p := range []*string{&gwasFolder, &modelPath, &outputFile, &outputFolder} {
		if *p, err = gwasbetas.ExpandHome(*p); err != nil {
			log.Fatalln(err)
		}
	}

	if gwasbetas.IsGoogleStorage(outputFile) || gwasbetas.IsGoogleStorage(outputFolder) {
		log.Fatalln("Outputs must be written locally")
	}

	ctx := context.Background()
	if gwasbetas.IsGoogleStorage(gwasFolder) || gwasbetas.IsGoogleStorage(modelPath) {
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	opts := harmonize.Options{
		Split:  split,
		Policy: harmonize.Strict,
		Logger: log.Default(),
	}
	if !throw {
		opts.Policy = harmonize.Lenient
	}

	if modelPath != "" {
		m, err := model.Load(modelPath, client)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Loaded", m.Len(), "SNPs from the model at", modelPath)
		opts.Model = m
	}

	paths, err := gwas.Discover(ctx, gwasFolder, filePattern, client)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Found", len(paths), "GWAS files in", gwasFolder)

	src := &gwas.FileSource{
		Paths:   paths,
		Client:  client,
		Options: gwas.ReadOptions{Separator: sep, SkipUntilHeader: skipUntilHeader},
	}

	res, err := harmonize.Run(src, roles, opts)
	if err != nil {
		log.Fatalln(err)
	}

	for _, failed := range res.Failed {
		log.Println("Skipped:", failed)
	}

	if split {
		written, err := harmonize.WriteSplit(outputFolder, res)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", len(written), "files to", outputFolder)
		return
	}

	if outputFile != "" {
		if err := harmonize.WriteFile(outputFile, res.Tables[0]); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", res.Tables[0].Len(), "SNPs to", outputFile)
		return
	}

	if err := writeStdout(os.Stdout, res); err != nil {
		log.Fatalln(err)
	}
}

func writeStdout(w io.Writer, res *harmonize.Result) error {
	STDOUT := bufio.NewWriterSize(w, 4096)
	if err := harmonize.Write(STDOUT, res.Tables[0]); err != nil {
		return err
	}
	return STDOUT.Flush()
}
