package types

// Default values for the packaged project. These match the application this
// tool was built to package: a Tk-based PDF splitter shipped as a single
// windowed executable.
const (
	// DefaultName is the output artifact name passed to the bundler.
	DefaultName = "PDFSplitter"

	// DefaultEntry is the entry script handed to the bundler.
	DefaultEntry = "pdf_splitter.py"

	// DefaultManifest is the pip dependency manifest.
	DefaultManifest = "requirements.txt"

	// DefaultDistDir is the conventional output directory for artifacts.
	DefaultDistDir = "dist"

	// DefaultWorkDir is the bundler's scratch directory.
	DefaultWorkDir = "build"
)

// ProjectConfig describes one packaging target: which script to bundle, under
// what name, and how.
type ProjectConfig struct {
	// Name is the artifact name (without platform suffix).
	Name string `json:"name" yaml:"name"`

	// Entry is the path to the Python entry script.
	Entry string `json:"entry" yaml:"entry"`

	// Manifest is the path to the pip requirements file.
	Manifest string `json:"manifest" yaml:"manifest"`

	// DistDir is the directory the artifact is written to.
	DistDir string `json:"dist_dir" yaml:"dist_dir"`

	// WorkDir is the bundler's intermediate build directory.
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// OneFile requests a single-file artifact rather than a directory.
	OneFile bool `json:"one_file" yaml:"one_file"`

	// Windowed suppresses the console window on platforms that have one.
	Windowed bool `json:"windowed" yaml:"windowed"`

	// Clean asks the bundler to discard its cache before building.
	Clean bool `json:"clean" yaml:"clean"`
}

// Normalize fills empty string fields with the project defaults. Boolean
// fields are left alone; the CLI defaults them to one-file windowed output.
func (c *ProjectConfig) Normalize() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Entry == "" {
		c.Entry = DefaultEntry
	}
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}
	if c.DistDir == "" {
		c.DistDir = DefaultDistDir
	}
	if c.WorkDir == "" {
		c.WorkDir = DefaultWorkDir
	}
}
