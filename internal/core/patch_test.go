package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnifiedDiff_ModifiedFile(t *testing.T) {
	raw := `diff --git a/main.go b/main.go
index 123..456 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 package main
-func old() {}
+func new() {}
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 1)
	f := files[0]
	assert.Equal(t, "main.go", f.Path)
	assert.Equal(t, Modified, f.Kind)
	assert.Equal(t, 1, f.Additions)
	assert.Equal(t, 1, f.Deletions)
}

func TestParseUnifiedDiff_AddedFile(t *testing.T) {
	raw := `diff --git a/new.go b/new.go
new file mode 100644
index 0000000..abc
--- /dev/null
+++ b/new.go
@@ -0,0 +1,2 @@
+package core
+var X = 1
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 1)
	assert.Equal(t, Added, files[0].Kind)
	assert.Equal(t, 2, files[0].Additions)
}

func TestParseUnifiedDiff_DeletedFile(t *testing.T) {
	raw := `diff --git a/old.go b/old.go
deleted file mode 100644
index abc..0000000
--- a/old.go
+++ /dev/null
@@ -1,1 +0,0 @@
-package core
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 1)
	assert.Equal(t, Deleted, files[0].Kind)
	assert.Equal(t, 1, files[0].Deletions)
}

func TestParseUnifiedDiff_RenamedFile(t *testing.T) {
	raw := `diff --git a/old_name.go b/new_name.go
similarity index 100%
rename from old_name.go
rename to new_name.go
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 1)
	assert.Equal(t, Renamed, files[0].Kind)
	assert.Equal(t, "old_name.go", files[0].OldPath)
	assert.Equal(t, "new_name.go", files[0].Path)
}

func TestParseUnifiedDiff_MultipleFilesSortedByPath(t *testing.T) {
	raw := `diff --git a/zebra.go b/zebra.go
--- a/zebra.go
+++ b/zebra.go
@@ -1 +1 @@
-a
+b
diff --git a/alpha.go b/alpha.go
--- a/alpha.go
+++ b/alpha.go
@@ -1 +1 @@
-a
+b
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 2)
	assert.Equal(t, "alpha.go", files[0].Path)
	assert.Equal(t, "zebra.go", files[1].Path)
}

func TestReconstructFromPatch_RebuildsBothSides(t *testing.T) {
	raw := `diff --git a/main.go b/main.go
index 123..456 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 package main
-func old() {}
+func new() {}
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 1)

	old, new_ := ReconstructFromPatch(files[0].Patch)
	assert.Equal(t, "package main\nfunc old() {}", string(old))
	assert.Equal(t, "package main\nfunc new() {}", string(new_))
}

func TestReconstructFromPatch_AddedFileHasNoOldSide(t *testing.T) {
	raw := `diff --git a/new.go b/new.go
new file mode 100644
index 0000000..abc
--- /dev/null
+++ b/new.go
@@ -0,0 +1,2 @@
+package core
+var X = 1
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 1)

	old, new_ := ReconstructFromPatch(files[0].Patch)
	assert.Empty(t, string(old))
	assert.Equal(t, "package core\nvar X = 1", string(new_))
}

func TestParseDiffHeader_HandlesSpacesInPath(t *testing.T) {
	old, new_, ok := parseDiffHeader("diff --git a/path with b/ in it.go b/path with b/ in it.go")
	require.True(t, ok)
	assert.Equal(t, "path with b/ in it.go", old)
	assert.Equal(t, "path with b/ in it.go", new_)
}
