package domain

import (
	"encoding/xml"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/tools/cover"

	m "covrun.dev/pkg/covrun/internal/model"
)

const coberturaDocType = `<!DOCTYPE coverage SYSTEM "http://cobertura.sourceforge.net/xml/coverage-04.dtd">` + "\n"

// Cobertura is the root element of a Cobertura 4 coverage report.
type Cobertura struct {
	XMLName         xml.Name          `xml:"coverage"`
	LineRate        float64           `xml:"line-rate,attr"`
	BranchRate      float64           `xml:"branch-rate,attr"`
	LinesCovered    int               `xml:"lines-covered,attr"`
	LinesValid      int               `xml:"lines-valid,attr"`
	BranchesCovered int               `xml:"branches-covered,attr"`
	BranchesValid   int               `xml:"branches-valid,attr"`
	Complexity      float64           `xml:"complexity,attr"`
	Version         string            `xml:"version,attr"`
	Timestamp       int64             `xml:"timestamp,attr"`
	Sources         CoberturaSources  `xml:"sources"`
	Packages        CoberturaPackages `xml:"packages"`
}

// CoberturaSources lists the roots class filenames are relative to.
type CoberturaSources struct {
	Source []string `xml:"source"`
}

// CoberturaPackages wraps the package list.
type CoberturaPackages struct {
	Package []CoberturaPackage `xml:"package"`
}

// CoberturaPackage is one Go import path.
type CoberturaPackage struct {
	Name       string           `xml:"name,attr"`
	LineRate   float64          `xml:"line-rate,attr"`
	BranchRate float64          `xml:"branch-rate,attr"`
	Complexity float64          `xml:"complexity,attr"`
	Classes    CoberturaClasses `xml:"classes"`
}

// CoberturaClasses wraps the class list.
type CoberturaClasses struct {
	Class []CoberturaClass `xml:"class"`
}

// CoberturaClass is one Go source file.
type CoberturaClass struct {
	Name       string           `xml:"name,attr"`
	Filename   string           `xml:"filename,attr"`
	LineRate   float64          `xml:"line-rate,attr"`
	BranchRate float64          `xml:"branch-rate,attr"`
	Complexity float64          `xml:"complexity,attr"`
	Methods    CoberturaMethods `xml:"methods"`
	Lines      CoberturaLines   `xml:"lines"`
}

// CoberturaMethods is always empty; go coverage profiles carry no function data.
type CoberturaMethods struct{}

// CoberturaLines wraps the line list.
type CoberturaLines struct {
	Line []CoberturaLine `xml:"line"`
}

// CoberturaLine is the hit count of a single source line.
type CoberturaLine struct {
	Number int    `xml:"number,attr"`
	Hits   int    `xml:"hits,attr"`
	Branch string `xml:"branch,attr"`
}

// CoberturaOptions controls how profile file names map to report file names.
type CoberturaOptions struct {
	// SourceRoot is the directory class filenames are made relative to.
	SourceRoot m.Path
	// ModulePath is stripped from profile file names that PackageDirs cannot resolve.
	ModulePath string
	// PackageDirs maps import paths to source directories.
	PackageDirs map[string]m.Path
	Timestamp   time.Time
}

// BuildCobertura converts go coverage profiles into a Cobertura report. A line
// counts as hit with the highest count of any block that touches it.
func BuildCobertura(profiles []*cover.Profile, opts CoberturaOptions) *Cobertura {
	report := &Cobertura{
		Version:   "covrun",
		Timestamp: opts.Timestamp.UnixMilli(),
	}

	if opts.SourceRoot != "" {
		report.Sources.Source = []string{string(opts.SourceRoot)}
	}

	byPackage := make(map[string][]CoberturaClass)
	counts := make(map[string][2]int)

	for _, profile := range profiles {
		importPath := path.Dir(profile.FileName)
		class, covered, valid := buildClass(profile, opts)

		byPackage[importPath] = append(byPackage[importPath], class)

		c := counts[importPath]
		counts[importPath] = [2]int{c[0] + covered, c[1] + valid}
		report.LinesCovered += covered
		report.LinesValid += valid
	}

	names := make([]string, 0, len(byPackage))
	for name := range byPackage {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		classes := byPackage[name]
		sort.Slice(classes, func(i, j int) bool { return classes[i].Filename < classes[j].Filename })

		report.Packages.Package = append(report.Packages.Package, CoberturaPackage{
			Name:     name,
			LineRate: rate(counts[name][0], counts[name][1]),
			Classes:  CoberturaClasses{Class: classes},
		})
	}

	report.LineRate = rate(report.LinesCovered, report.LinesValid)

	return report
}

// Marshal renders the report with the XML header and Cobertura doctype.
func (c *Cobertura) Marshal() ([]byte, error) {
	data, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(xml.Header)+len(coberturaDocType)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, coberturaDocType...)
	out = append(out, data...)

	return append(out, '\n'), nil
}

func buildClass(profile *cover.Profile, opts CoberturaOptions) (CoberturaClass, int, int) {
	hits := make(map[int]int)

	for _, block := range profile.Blocks {
		for line := block.StartLine; line <= block.EndLine; line++ {
			if current, ok := hits[line]; !ok || block.Count > current {
				hits[line] = block.Count
			}
		}
	}

	numbers := make([]int, 0, len(hits))
	for line := range hits {
		numbers = append(numbers, line)
	}

	sort.Ints(numbers)

	class := CoberturaClass{
		Name:     strings.TrimSuffix(path.Base(profile.FileName), ".go"),
		Filename: classFilename(profile.FileName, opts),
	}

	covered := 0

	for _, line := range numbers {
		if hits[line] > 0 {
			covered++
		}

		class.Lines.Line = append(class.Lines.Line, CoberturaLine{Number: line, Hits: hits[line], Branch: "false"})
	}

	class.LineRate = rate(covered, len(numbers))

	return class, covered, len(numbers)
}

func classFilename(fileName string, opts CoberturaOptions) string {
	if dir, ok := opts.PackageDirs[path.Dir(fileName)]; ok && opts.SourceRoot != "" {
		abs := filepath.Join(string(dir), path.Base(fileName))

		rel, err := filepath.Rel(string(opts.SourceRoot), abs)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	if opts.ModulePath != "" && strings.HasPrefix(fileName, opts.ModulePath+"/") {
		return strings.TrimPrefix(fileName, opts.ModulePath+"/")
	}

	return fileName
}

func rate(covered, valid int) float64 {
	if valid == 0 {
		return 0
	}

	return float64(covered) / float64(valid)
}
