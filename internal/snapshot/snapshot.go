// Package snapshot builds point-in-time mappings from logical course paths
// to remote identifiers, one per namespace. The builders are pure with
// respect to local state: they read from the remote course capability and
// return plain mappings for the reconciler to load into the cache. Remote
// failures propagate uncaught at this layer.
package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/prokaj/canvasctl/internal/canvas"
)

// rootPrefix is the root folder name Canvas prepends to every folder path.
const rootPrefix = "course files"

// Files maps "{folder path}/{display name}" to file id for every file of
// the course, with the root prefix stripped from folder paths. Folders
// without files are skipped entirely, saving a listing call per folder.
func Files(ctx context.Context, api canvas.CourseAPI) (map[string]any, error) {
	data := make(map[string]any)
	folders, err := api.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		if folder.FilesCount == 0 {
			continue
		}
		files, err := api.ListFolderFiles(ctx, folder.ID)
		if err != nil {
			return nil, err
		}
		// "course files/problems" becomes "/problems"; files in the root
		// folder get keys like "/mathjax.png".
		folderName := strings.TrimPrefix(folder.FullName, rootPrefix)
		for _, file := range files {
			data[fmt.Sprintf("%s/%s", folderName, file.DisplayName)] = file.ID
		}
	}
	return data, nil
}

// Assignments maps "{group name}/{assignment name}" to assignment id. Group
// names are resolved through a memoized lookup so each distinct group costs
// at most one remote call no matter how many assignments share it.
func Assignments(ctx context.Context, api canvas.CourseAPI) (map[string]any, error) {
	data := make(map[string]any)
	groupNames := make(map[int]string)

	groupName := func(groupID int) (string, error) {
		if name, ok := groupNames[groupID]; ok {
			return name, nil
		}
		group, err := api.GetAssignmentGroup(ctx, groupID)
		if err != nil {
			return "", err
		}
		groupNames[groupID] = group.Name
		return group.Name, nil
	}

	assignments, err := api.ListAssignments(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, assignment := range assignments {
		name, err := groupName(assignment.AssignmentGroupID)
		if err != nil {
			return nil, err
		}
		data[fmt.Sprintf("%s/%s", name, assignment.Name)] = assignment.ID
	}
	return data, nil
}

// Quizzes maps quiz title to quiz id.
func Quizzes(ctx context.Context, api canvas.CourseAPI) (map[string]any, error) {
	data := make(map[string]any)
	quizzes, err := api.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	for _, quiz := range quizzes {
		data[quiz.Title] = quiz.ID
	}
	return data, nil
}
