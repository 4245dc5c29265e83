package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/taskio/taskboard/internal/config"
	"github.com/taskio/taskboard/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

// Client talks to the taskboard REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient creates a new API client. The base URL comes from the
// TASKBOARD_API_URL environment variable, then the CLI config, then a
// localhost default. The session token is loaded if one is stored.
func NewClient() *Client {
	baseURL := os.Getenv("TASKBOARD_API_URL")
	if baseURL == "" {
		if cfg, err := config.Load(); err == nil && cfg.APIBaseURL != "" {
			baseURL = cfg.APIBaseURL
		}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	token, _ := config.Token()

	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response body
func (c *Client) makeRequest(method, endpoint string, body interface{}) ([]byte, error) {
	url := c.BaseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	respBody, err := c.makeRequest("POST", "/user/login", body)
	if err != nil {
		return "", err
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	return resp.AccessToken, nil
}

// Register creates a new user account.
func (c *Client) Register(name, email, password string) (*models.SimpleUser, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	respBody, err := c.makeRequest("POST", "/user", body)
	if err != nil {
		return nil, err
	}

	var user models.SimpleUser
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &user, nil
}

// ListUsers returns one page of users.
func (c *Client) ListUsers(page, size int) ([]models.SimpleUser, error) {
	respBody, err := c.makeRequest("GET", "/user?"+pageQuery(page, size).Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Users []models.SimpleUser `json:"users"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse users: %w", err)
	}
	return resp.Users, nil
}

// GetUser returns a single user.
func (c *Client) GetUser(id uint) (*models.SimpleUser, error) {
	respBody, err := c.makeRequest("GET", fmt.Sprintf("/user/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var user models.SimpleUser
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &user, nil
}

// ListProjects returns one page of projects.
func (c *Client) ListProjects(page, size int) ([]models.Project, error) {
	respBody, err := c.makeRequest("GET", "/projects?"+pageQuery(page, size).Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Projects []models.Project `json:"projects"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse projects: %w", err)
	}
	return resp.Projects, nil
}

// CreateProject creates a new project owned by the logged-in user.
func (c *Client) CreateProject(name, description string) (*models.Project, error) {
	body := map[string]string{"name": name, "description": description}
	respBody, err := c.makeRequest("POST", "/projects", body)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := json.Unmarshal(respBody, &project); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	return &project, nil
}

// GetProject returns a project with creator, members and tasks.
func (c *Client) GetProject(id uint) (*models.Project, error) {
	respBody, err := c.makeRequest("GET", fmt.Sprintf("/projects/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := json.Unmarshal(respBody, &project); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	return &project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(id uint) error {
	_, err := c.makeRequest("DELETE", fmt.Sprintf("/projects/%d", id), nil)
	return err
}

// AddMembers adds users to a project's member set.
func (c *Client) AddMembers(projectID uint, memberIDs []uint) (*models.Project, error) {
	body := map[string][]uint{"memberIds": memberIDs}
	respBody, err := c.makeRequest("POST", fmt.Sprintf("/projects/%d/members", projectID), body)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := json.Unmarshal(respBody, &project); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	return &project, nil
}

// ListTasks returns one page of tasks, optionally narrowed by status
// and/or project. Zero values leave a filter off.
func (c *Client) ListTasks(page, size int, status string, projectID uint) ([]models.Task, error) {
	q := pageQuery(page, size)
	if status != "" {
		q.Set("status", status)
	}
	if projectID != 0 {
		q.Set("projectId", strconv.FormatUint(uint64(projectID), 10))
	}

	respBody, err := c.makeRequest("GET", "/tasks?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Tasks []models.Task `json:"tasks"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse tasks: %w", err)
	}
	return resp.Tasks, nil
}

// CreateTask creates a task in the given project with the given tags.
func (c *Client) CreateTask(title, description, status string, projectID uint, tagIDs []uint) (*models.Task, error) {
	body := map[string]interface{}{
		"title":       title,
		"description": description,
		"status":      status,
		"projectId":   projectID,
		"tags":        tagIDs,
	}
	respBody, err := c.makeRequest("POST", "/tasks", body)
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal(respBody, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task: %w", err)
	}
	return &task, nil
}

// GetTask returns a task with its tags and assignees.
func (c *Client) GetTask(id uint) (*models.Task, error) {
	respBody, err := c.makeRequest("GET", fmt.Sprintf("/tasks/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal(respBody, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task: %w", err)
	}
	return &task, nil
}

// UpdateTask applies a partial update. Nil fields are left untouched.
func (c *Client) UpdateTask(id uint, title, description, status *string) (*models.Task, error) {
	body := map[string]interface{}{}
	if title != nil {
		body["title"] = *title
	}
	if description != nil {
		body["description"] = *description
	}
	if status != nil {
		body["status"] = *status
	}

	respBody, err := c.makeRequest("PATCH", fmt.Sprintf("/tasks/%d", id), body)
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal(respBody, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task: %w", err)
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(id uint) error {
	_, err := c.makeRequest("DELETE", fmt.Sprintf("/tasks/%d", id), nil)
	return err
}

// AddTags adds tags to a task.
func (c *Client) AddTags(taskID uint, tagIDs []uint) (*models.Task, error) {
	body := map[string][]uint{"tagIds": tagIDs}
	respBody, err := c.makeRequest("POST", fmt.Sprintf("/tasks/%d/tags", taskID), body)
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal(respBody, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task: %w", err)
	}
	return &task, nil
}

// AddAssignee assigns a user to a task.
func (c *Client) AddAssignee(taskID, userID uint) (*models.Task, error) {
	body := map[string]uint{"userId": userID}
	respBody, err := c.makeRequest("POST", fmt.Sprintf("/tasks/%d/assignees", taskID), body)
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal(respBody, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task: %w", err)
	}
	return &task, nil
}

// ListTags returns one page of tags.
func (c *Client) ListTags(page, size int) ([]models.Tag, error) {
	respBody, err := c.makeRequest("GET", "/tags?"+pageQuery(page, size).Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Tags []models.Tag `json:"tags"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse tags: %w", err)
	}
	return resp.Tags, nil
}

// CreateTag creates a new tag.
func (c *Client) CreateTag(title string) (*models.Tag, error) {
	body := map[string]string{"title": title}
	respBody, err := c.makeRequest("POST", "/tags", body)
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := json.Unmarshal(respBody, &tag); err != nil {
		return nil, fmt.Errorf("failed to parse tag: %w", err)
	}
	return &tag, nil
}

// DeleteTag removes a tag.
func (c *Client) DeleteTag(id uint) error {
	_, err := c.makeRequest("DELETE", fmt.Sprintf("/tags/%d", id), nil)
	return err
}
