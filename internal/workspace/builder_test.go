package workspace

import (
	"bytes"
	"io"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nichefold/pkg/niche"
	"nichefold/pkg/template"
)

func readFile(t *testing.T, fs billy.Filesystem, path string) string {
	t.Helper()
	f, err := fs.Open(path)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

// tree lists every path below root, directories with a trailing slash.
func tree(t *testing.T, fs billy.Filesystem, root string) []string {
	t.Helper()
	var paths []string
	var walk func(dir, rel string)
	walk = func(dir, rel string) {
		infos, err := fs.ReadDir(dir)
		require.NoError(t, err)
		for _, info := range infos {
			name := rel + info.Name()
			if info.IsDir() {
				paths = append(paths, name+"/")
				walk(fs.Join(dir, info.Name()), name+"/")
				continue
			}
			paths = append(paths, name)
		}
	}
	walk(root, "")
	sort.Strings(paths)
	return paths
}

func realEstate(t *testing.T) niche.Definition {
	t.Helper()
	def, err := niche.NewCatalog().Resolve("2")
	require.NoError(t, err)
	return def
}

type failingFS struct {
	billy.Filesystem
	failOn string
}

func (f *failingFS) MkdirAll(path string, perm os.FileMode) error {
	if strings.Contains(path, f.failOn) {
		return os.ErrPermission
	}
	return f.Filesystem.MkdirAll(path, perm)
}

func TestBuild_SmithRealty(t *testing.T) {
	fs := memfs.New()
	out := &bytes.Buffer{}
	def := realEstate(t)

	res, err := NewBuilder(fs, out, template.NewEngine()).Build("/clients/Smith Realty", "Smith Realty", def.Name, def.Directories)
	require.NoError(t, err)

	for _, dir := range []string{
		"1_re_crm/lead_lists",
		"1_re_crm/follow_up_scripts",
		"2_re_listings/marketing_assets",
		"2_re_listings/mls_data",
		"3_re_transactions/contracts_docs",
		"3_re_transactions/inspection_reports",
		"3_re_transactions/closing_checklists",
		"4_re_admin/agent_templates",
	} {
		info, err := fs.Stat(fs.Join("/clients/Smith Realty", dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	for _, name := range []string{"README.md", "0_Client_Logins_SECURE.txt", "0_Niche_SOP.md"} {
		assert.NotEmpty(t, readFile(t, fs, fs.Join("/clients/Smith Realty", name)), name)
	}
	assert.Contains(t, readFile(t, fs, "/clients/Smith Realty/README.md"), "Smith Realty")
	assert.Contains(t, readFile(t, fs, "/clients/Smith Realty/0_Niche_SOP.md"), "Real Estate")

	assert.Equal(t, def.Directories, res.Directories)
	assert.Len(t, res.FilesCreated, 3)
	assert.Empty(t, res.FilesSkipped)

	text := out.String()
	assert.Equal(t, 8, strings.Count(text, "Dir: "))
	assert.Equal(t, 3, strings.Count(text, "File: "))
	assert.Contains(t, text, "Project 'Smith Realty' for 'Real Estate' created successfully!")
}

func TestBuild_Idempotent(t *testing.T) {
	fs := memfs.New()
	def := realEstate(t)
	root := "/clients/Acme"
	builder := NewBuilder(fs, io.Discard, template.NewEngine())

	_, err := builder.Build(root, "Acme", def.Name, def.Directories)
	require.NoError(t, err)
	first := tree(t, fs, root)

	require.NoError(t, util.WriteFile(fs, fs.Join(root, "README.md"), []byte("operator notes"), 0o644))

	out := &bytes.Buffer{}
	res, err := NewBuilder(fs, out, template.NewEngine()).Build(root, "Acme", def.Name, def.Directories)
	require.NoError(t, err)

	assert.Equal(t, first, tree(t, fs, root))
	assert.Equal(t, "operator notes", readFile(t, fs, fs.Join(root, "README.md")))
	assert.Empty(t, res.FilesCreated)
	assert.Len(t, res.FilesSkipped, 3)
	assert.NotContains(t, out.String(), "File: ")
}

func TestBuild_Completeness_AllNiches(t *testing.T) {
	engine := template.NewEngine()

	for _, def := range niche.NewCatalog().List() {
		t.Run(def.Name, func(t *testing.T) {
			fs := memfs.New()
			root := "/base/Client"

			_, err := NewBuilder(fs, io.Discard, engine).Build(root, "Client", def.Name, def.Directories)
			require.NoError(t, err)

			for _, dir := range def.Directories {
				info, err := fs.Stat(fs.Join(root, dir))
				require.NoError(t, err)
				assert.True(t, info.IsDir())
			}
			for _, name := range engine.Filenames() {
				_, err := fs.Stat(fs.Join(root, name))
				assert.NoError(t, err, name)
			}
		})
	}
}

func TestBuild_NestedTemplatePath(t *testing.T) {
	fs := memfs.New()
	engine := template.NewEngineWithSpecs([]template.Spec{
		{Filename: "docs/intake/notes.md", Generate: func(p, n string) string { return p + " " + n }},
	})

	_, err := NewBuilder(fs, io.Discard, engine).Build("/base/Acme", "Acme", "Bookkeeper", nil)
	require.NoError(t, err)
	assert.Equal(t, "Acme Bookkeeper", readFile(t, fs, "/base/Acme/docs/intake/notes.md"))
}

func TestBuild_FailureStopsAndKeepsPartialTree(t *testing.T) {
	mem := memfs.New()
	fs := &failingFS{Filesystem: mem, failOn: "2_re_listings"}
	def := realEstate(t)

	res, err := NewBuilder(fs, io.Discard, template.NewEngine()).Build("/base/Acme", "Acme", def.Name, def.Directories)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "2_re_listings")

	require.NotNil(t, res)
	assert.Equal(t, []string{"1_re_crm/lead_lists", "1_re_crm/follow_up_scripts"}, res.Directories)

	_, err = mem.Stat("/base/Acme/1_re_crm/lead_lists")
	assert.NoError(t, err)
	_, err = mem.Stat("/base/Acme/README.md")
	assert.True(t, os.IsNotExist(err))
}

func TestBuild_RootIsFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/base/Acme", []byte("x"), 0o644))
	def := realEstate(t)

	_, err := NewBuilder(fs, io.Discard, template.NewEngine()).Build("/base/Acme", "Acme", def.Name, def.Directories)
	assert.Error(t, err)
}
