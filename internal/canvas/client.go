// Package canvas provides the REST binding for the Canvas LMS API, scoped
// to a single course. Higher layers consume it through the CourseAPI
// interface; network and auth failures propagate to the caller unchanged.
package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client handles API requests to a Canvas instance for one course.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
	courseID   int
}

// NewClient creates a client for the course at baseURL (e.g.
// "https://canvas.example.edu") authenticated by token.
func NewClient(baseURL, token string, courseID int) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		courseID:   courseID,
	}
}

// WithHTTPClient replaces the underlying HTTP client. Tests use this to
// point the binding at a local server.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the Canvas instance URL the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// CourseID returns the course the client is scoped to.
func (c *Client) CourseID() int { return c.courseID }

// coursePath builds an API path under the client's course.
func (c *Client) coursePath(format string, args ...any) string {
	return fmt.Sprintf("/api/v1/courses/%d", c.courseID) + fmt.Sprintf(format, args...)
}

// do performs one API request and returns the response body and headers.
func (c *Client) do(ctx context.Context, method, rawURL string, query url.Values, body any) ([]byte, http.Header, error) {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = c.baseURL + rawURL
	}
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("%s %s failed with status %d: %s",
			method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, resp.Header, nil
}

// nextLink extracts the rel="next" URL from a Link header, or "" when the
// listing has no further pages.
func nextLink(h http.Header) string {
	for _, link := range strings.Split(h.Get("Link"), ",") {
		parts := strings.Split(strings.TrimSpace(link), ";")
		if len(parts) < 2 {
			continue
		}
		if strings.TrimSpace(parts[1]) == `rel="next"` {
			return strings.Trim(strings.TrimSpace(parts[0]), "<>")
		}
	}
	return ""
}

// listAll follows rel="next" pagination, decoding each page of results.
func listAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var all []T
	for path != "" {
		body, headers, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return nil, err
		}
		var page []T
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to decode listing: %w", err)
		}
		all = append(all, page...)
		// The next link already carries the query parameters.
		path, query = nextLink(headers), nil
	}
	return all, nil
}

// getOne decodes a single object response.
func getOne[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	respBody, _, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// ListFolders retrieves every folder of the course file tree.
func (c *Client) ListFolders(ctx context.Context) ([]Folder, error) {
	return listAll[Folder](ctx, c, c.coursePath("/folders"), url.Values{"per_page": {"100"}})
}

// ListFolderFiles retrieves the files of one folder.
func (c *Client) ListFolderFiles(ctx context.Context, folderID int) ([]File, error) {
	path := fmt.Sprintf("/api/v1/folders/%d/files", folderID)
	return listAll[File](ctx, c, path, url.Values{"per_page": {"100"}})
}

// ResolveFolderPath resolves a folder path to the chain of folders from the
// root down to the target. A missing path is an error.
func (c *Client) ResolveFolderPath(ctx context.Context, path string) ([]Folder, error) {
	apiPath := c.coursePath("/folders/by_path/%s", escapePath(path))
	body, _, err := c.do(ctx, http.MethodGet, apiPath, nil, nil)
	if err != nil {
		return nil, err
	}
	var folders []Folder
	if err := json.Unmarshal(body, &folders); err != nil {
		return nil, fmt.Errorf("failed to decode folder chain: %w", err)
	}
	return folders, nil
}

// escapePath escapes each segment of a folder path, keeping the slashes.
func escapePath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// CreateFolder creates a folder under parentPath.
func (c *Client) CreateFolder(ctx context.Context, name, parentPath string) (*Folder, error) {
	return getOne[Folder](ctx, c, http.MethodPost, c.coursePath("/folders"), map[string]string{
		"name":               name,
		"parent_folder_path": parentPath,
	})
}

// UploadFile uploads r as a file named name into the given folder. Canvas
// uploads are two requests: the first reserves the upload and returns a
// target URL with opaque parameters, the second posts the content as
// multipart form data with the file field last.
func (c *Client) UploadFile(ctx context.Context, folderID int, name string, size int64, r io.Reader, overwrite bool) (*File, error) {
	onDuplicate := "rename"
	if overwrite {
		onDuplicate = "overwrite"
	}
	reserve, err := getOne[uploadTarget](ctx, c, http.MethodPost, c.coursePath("/files"), map[string]any{
		"name":             name,
		"size":             size,
		"parent_folder_id": folderID,
		"on_duplicate":     onDuplicate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reserve upload for %s: %w", name, err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range reserve.UploadParams {
		if err := w.WriteField(key, fmt.Sprint(value)); err != nil {
			return nil, fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reserve.UploadURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upload of %s failed with status %d: %s",
			name, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var file File
	if err := json.Unmarshal(respBody, &file); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &file, nil
}

// uploadTarget is the response of the upload reservation step.
type uploadTarget struct {
	UploadURL    string         `json:"upload_url"`
	UploadParams map[string]any `json:"upload_params"`
}

// ListAssignments retrieves the course assignments, optionally filtered by
// a search term matched against assignment names.
func (c *Client) ListAssignments(ctx context.Context, searchTerm string) ([]Assignment, error) {
	query := url.Values{"per_page": {"100"}}
	if searchTerm != "" {
		query.Set("search_term", searchTerm)
	}
	return listAll[Assignment](ctx, c, c.coursePath("/assignments"), query)
}

// GetAssignmentGroup retrieves one assignment group by id.
func (c *Client) GetAssignmentGroup(ctx context.Context, groupID int) (*AssignmentGroup, error) {
	return getOne[AssignmentGroup](ctx, c, http.MethodGet, c.coursePath("/assignment_groups/%d", groupID), nil)
}

// CreateAssignment creates an assignment.
func (c *Client) CreateAssignment(ctx context.Context, assignment NewAssignment) (*Assignment, error) {
	return getOne[Assignment](ctx, c, http.MethodPost, c.coursePath("/assignments"),
		map[string]NewAssignment{"assignment": assignment})
}

// EditAssignment applies changes to an existing assignment.
func (c *Client) EditAssignment(ctx context.Context, id int, changes NewAssignment) (*Assignment, error) {
	return getOne[Assignment](ctx, c, http.MethodPut, c.coursePath("/assignments/%d", id),
		map[string]NewAssignment{"assignment": changes})
}

// DeleteAssignment deletes an assignment.
func (c *Client) DeleteAssignment(ctx context.Context, id int) error {
	_, _, err := c.do(ctx, http.MethodDelete, c.coursePath("/assignments/%d", id), nil, nil)
	return err
}

// ListQuizzes retrieves the course quizzes.
func (c *Client) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	return listAll[Quiz](ctx, c, c.coursePath("/quizzes"), url.Values{"per_page": {"100"}})
}

// CreateQuiz creates a quiz.
func (c *Client) CreateQuiz(ctx context.Context, quiz NewQuiz) (*Quiz, error) {
	return getOne[Quiz](ctx, c, http.MethodPost, c.coursePath("/quizzes"),
		map[string]NewQuiz{"quiz": quiz})
}

// EditQuiz applies changes to an existing quiz.
func (c *Client) EditQuiz(ctx context.Context, id int, changes NewQuiz) (*Quiz, error) {
	return getOne[Quiz](ctx, c, http.MethodPut, c.coursePath("/quizzes/%d", id),
		map[string]NewQuiz{"quiz": changes})
}

// CreateQuestionGroup creates a question group inside a quiz.
func (c *Client) CreateQuestionGroup(ctx context.Context, quizID int, group NewQuestionGroup) (*QuestionGroup, error) {
	body := map[string][]NewQuestionGroup{"quiz_groups": {group}}
	respBody, _, err := c.do(ctx, http.MethodPost, c.coursePath("/quizzes/%d/groups", quizID), nil, body)
	if err != nil {
		return nil, err
	}
	// The response wraps the created groups in a quiz_groups array.
	var out struct {
		QuizGroups []QuestionGroup `json:"quiz_groups"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to decode question group response: %w", err)
	}
	if len(out.QuizGroups) == 0 {
		return nil, fmt.Errorf("question group response contained no groups")
	}
	return &out.QuizGroups[0], nil
}

// CreateQuestion creates a question inside a quiz.
func (c *Client) CreateQuestion(ctx context.Context, quizID int, question NewQuestion) (*Question, error) {
	return getOne[Question](ctx, c, http.MethodPost, c.coursePath("/quizzes/%d/questions", quizID),
		map[string]NewQuestion{"question": question})
}

// ListStudents retrieves the student enrollments of the course.
func (c *Client) ListStudents(ctx context.Context) ([]Enrollment, error) {
	query := url.Values{"per_page": {"100"}, "type[]": {"StudentEnrollment"}}
	return listAll[Enrollment](ctx, c, c.coursePath("/enrollments"), query)
}

// EditFrontPage replaces the course front page.
func (c *Client) EditFrontPage(ctx context.Context, title, body string) error {
	payload := map[string]map[string]string{
		"wiki_page": {"title": title, "body": body},
	}
	_, _, err := c.do(ctx, http.MethodPut, c.coursePath("/front_page"), nil, payload)
	return err
}
