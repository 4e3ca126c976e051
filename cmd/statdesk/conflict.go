package main

import (
	"fmt"

	"statdesk/pkg/types"
)

func parseConflict(s string) (types.ConflictPolicy, error) {
	switch s {
	case "rename":
		return types.Rename, nil
	case "overwrite":
		return types.Overwrite, nil
	case "skip":
		return types.Skip, nil
	}
	return types.Skip, fmt.Errorf("unknown conflict policy %q (want rename, overwrite or skip)", s)
}
