package main

import (
	"Portfolio/internal/console"
	"Portfolio/internal/model"
	"Portfolio/internal/service"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

type stringList []string

func (l *stringList) String() string     { return strings.Join(*l, ",") }
func (l *stringList) Set(v string) error { *l = append(*l, v); return nil }

const usage = `usage: console [-base URL] [-token TOKEN] <command> [args]

commands:
  login <email> <password>           print a session token
  logout
  list <posts|projects>
  create <posts|projects> -title T -body B [-subtitle S] [-project-url U] [-github-url U] [-image F] [-sub-image F ...]
  delete <posts|projects> <id>       asks for confirmation
  edit <posts|projects> <id>
`

func main() {
	base := flag.String("base", envOr("PORTFOLIO_API", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("PORTFOLIO_TOKEN"), "session token")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, console.NewClient(*base, *token), args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *console.Client, args []string) error {
	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("login needs <email> <password>")
		}
		session, err := c.Login(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Println(session.Token)
	case "logout":
		return c.Logout(ctx)
	case "list":
		kind, err := kindArg(args, 2)
		if err != nil {
			return err
		}
		board, err := c.List(ctx, kind.Collection)
		if err != nil {
			return err
		}
		if len(board.Items) == 0 {
			fmt.Printf("No %s found.\n", kind.Collection)
		}
		for _, item := range board.Items {
			fmt.Printf("%s  %s  %s\n", item.ID, item.CreatedAt.Format(time.DateTime), item.Title)
		}
	case "create":
		kind, err := kindArg(args, 2)
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("create", flag.ContinueOnError)
		var req console.CreateRequest
		var subs stringList
		fs.StringVar(&req.Title, "title", "", "title")
		fs.StringVar(&req.Body, "body", "", kind.BodyLabel)
		fs.StringVar(&req.Subtitle, "subtitle", "", "subtitle (posts)")
		fs.StringVar(&req.ProjectURL, "project-url", "", "live demo link (projects)")
		fs.StringVar(&req.GithubURL, "github-url", "", "repository link (projects)")
		fs.StringVar(&req.Image, "image", "", "primary image file")
		fs.Var(&subs, "sub-image", "additional image file, repeatable (posts)")
		if err = fs.Parse(args[2:]); err != nil {
			return err
		}
		req.SubImages = subs
		item, err := c.Create(ctx, kind.Collection, req)
		if err != nil {
			return err
		}
		fmt.Printf("created %s %s\n", kind.Noun, item.ID)
	case "delete":
		kind, err := kindArg(args, 3)
		if err != nil {
			return err
		}
		if !console.Confirm(os.Stdin, os.Stdout, service.DeletePrompt(kind)) {
			fmt.Println("cancelled")
			return nil
		}
		if err = c.Delete(ctx, kind.Collection, args[2]); err != nil {
			return err
		}
		fmt.Println("deleted")
	case "edit":
		kind, err := kindArg(args, 3)
		if err != nil {
			return err
		}
		return c.Edit(ctx, kind.Collection, args[2])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func kindArg(args []string, min int) (model.Kind, error) {
	if len(args) < min {
		return model.Kind{}, fmt.Errorf("%s needs more arguments", args[0])
	}
	kind, ok := model.KindByCollection(args[1])
	if !ok {
		return model.Kind{}, fmt.Errorf("unknown collection %q, use posts or projects", args[1])
	}
	return kind, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
