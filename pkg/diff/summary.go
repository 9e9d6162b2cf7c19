package diff

// Summary holds aggregate statistics for a comparison. It is derived
// deterministically from the change list by folding each top-level change
// through AddChange.
type Summary struct {
	// Added is the number of added entries.
	Added uint64 `json:"added"`
	// Removed is the number of removed entries.
	Removed uint64 `json:"removed"`
	// Modified is the number of directories with modified contents.
	Modified uint64 `json:"modified"`
	// Moved is the number of moved or renamed entries.
	Moved uint64 `json:"moved"`
	// TypeChanged is the number of entries whose node type changed.
	TypeChanged uint64 `json:"typeChanged"`
	// Unchanged is the number of unchanged entries.
	Unchanged uint64 `json:"unchanged"`
	// SizeChange is the net byte delta across all counted changes.
	SizeChange int64 `json:"sizeChange"`
	// DirectoriesAdded is the number of added directories.
	DirectoriesAdded uint64 `json:"directoriesAdded"`
	// FilesAdded is the number of added non-directory entries.
	FilesAdded uint64 `json:"filesAdded"`
	// DirectoriesRemoved is the number of removed directories.
	DirectoriesRemoved uint64 `json:"directoriesRemoved"`
	// FilesRemoved is the number of removed non-directory entries.
	FilesRemoved uint64 `json:"filesRemoved"`
	// DirectoriesMoved is the number of moved directories.
	DirectoriesMoved uint64 `json:"directoriesMoved"`
	// FilesMoved is the number of moved non-directory entries.
	FilesMoved uint64 `json:"filesMoved"`
}

// AddChange folds a change into the summary, recursing into the children of
// modified directories so that nested statistics are counted as well.
func (s *Summary) AddChange(change *Change) {
	// Update counters based on the change type.
	directory := change.IsDirectory()
	switch change.Type {
	case ChangeTypeAdded:
		s.Added++
		if directory {
			s.DirectoriesAdded++
		} else {
			s.FilesAdded++
		}
	case ChangeTypeRemoved:
		s.Removed++
		if directory {
			s.DirectoriesRemoved++
		} else {
			s.FilesRemoved++
		}
	case ChangeTypeModified:
		s.Modified++
	case ChangeTypeMoved:
		s.Moved++
		if directory {
			s.DirectoriesMoved++
		} else {
			s.FilesMoved++
		}
	case ChangeTypeTypeChanged:
		s.TypeChanged++
	case ChangeTypeUnchanged:
		s.Unchanged++
	}

	// Update the net size delta.
	s.SizeChange += change.SizeChange()

	// Recurse into the children of modified directories.
	if change.Type == ChangeTypeModified {
		for _, child := range change.Children {
			s.AddChange(child)
		}
	}
}

// TotalChanges returns the total number of changes, excluding unchanged
// entries.
func (s *Summary) TotalChanges() uint64 {
	return s.Added + s.Removed + s.Modified + s.Moved + s.TypeChanged
}
