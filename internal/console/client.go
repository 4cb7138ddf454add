package console

import (
	"Portfolio/internal/api/dto"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

var ErrUnauthorized = errors.New("not logged in or session expired, run `console login` first")

// envelope 与服务端的统一返回结构对应，Data 延迟解析
type envelope struct {
	Code    int             `json:"Code"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

// Client 管理端 JSON 接口的客户端
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c}
}

func (s *Client) Login(ctx context.Context, email, password string) (*dto.SessionDTO, error) {
	var session dto.SessionDTO
	err := s.do(ctx, s.http.R().SetBody(dto.LoginDTO{Email: email, Password: password}), "POST", "/api/auth/login", &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Client) Logout(ctx context.Context) error {
	return s.do(ctx, s.http.R(), "POST", "/api/auth/logout", nil)
}

func (s *Client) List(ctx context.Context, collection string) (*dto.BoardDTO, error) {
	var board dto.BoardDTO
	if err := s.do(ctx, s.http.R(), "GET", "/api/admin/"+collection, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// CreateRequest 创建内容的参数，图片为本地文件路径
type CreateRequest struct {
	dto.DraftDTO
	Image     string
	SubImages []string
}

func (s *Client) Create(ctx context.Context, collection string, req CreateRequest) (*dto.ContentDTO, error) {
	r := s.http.R().SetMultipartFormData(map[string]string{
		"title":       req.Title,
		"body":        req.Body,
		"subtitle":    req.Subtitle,
		"project_url": req.ProjectURL,
		"github_url":  req.GithubURL,
	})

	var opened []*os.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	attach := func(field, path string) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		opened = append(opened, f)
		r.SetMultipartField(field, filepath.Base(path), "", f)
		return nil
	}
	if req.Image != "" {
		if err := attach("image", req.Image); err != nil {
			return nil, err
		}
	}
	for _, p := range req.SubImages {
		if err := attach("sub_images", p); err != nil {
			return nil, err
		}
	}

	var item dto.ContentDTO
	if err := s.do(ctx, r, "POST", "/api/admin/"+collection, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Client) Delete(ctx context.Context, collection, id string) error {
	r := s.http.R().SetQueryParam("confirm", "true")
	return s.do(ctx, r, "DELETE", "/api/admin/"+collection+"/"+id, nil)
}

func (s *Client) Edit(ctx context.Context, collection, id string) error {
	return s.do(ctx, s.http.R(), "PUT", "/api/admin/"+collection+"/"+id, nil)
}

func (s *Client) do(ctx context.Context, r *resty.Request, method, path string, out interface{}) error {
	resp, err := r.SetContext(ctx).Execute(method, path)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}

	var env envelope
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("unexpected response (%d): %s", resp.StatusCode(), resp.String())
	}
	if env.Code == 401 {
		return ErrUnauthorized
	}
	if env.Code != 200 {
		return errors.New(env.Message)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
