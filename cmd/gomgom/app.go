package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gomgom-ai/gomgom-services/app/internal/client"
	"github.com/gomgom-ai/gomgom-services/app/internal/config"
	"github.com/gomgom-ai/gomgom-services/app/internal/geo"
	"github.com/gomgom-ai/gomgom-services/app/internal/quiz"
	"github.com/gomgom-ai/gomgom-services/app/internal/recommend"
	"github.com/gomgom-ai/gomgom-services/app/internal/session"
	"github.com/gomgom-ai/gomgom-services/app/internal/translate"
)

// lineScanner is the slice of bufio.Scanner the prompts need; tests
// substitute a scripted reader.
type lineScanner interface {
	Scan() bool
	Text() string
}

// App holds the wired dependencies of every subcommand.
type App struct {
	cfg         config.ClientConfig
	api         *client.Client
	store       session.Store
	guard       *session.Guard
	broadcaster *session.Broadcaster
	in          lineScanner
	out         io.Writer
}

// runRecommend drives the free-text flow: 위치 → 입력 → 추천 → 순환.
func (a *App) runRecommend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	text := fs.String("text", "", "먹고 싶은 것 (비우면 입력을 받는다)")
	spinnerName := fs.String("spinner", "dots", "로딩 표시 종류 (dots, paws, bar)")
	sensorOf := locationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	variant, err := ParseSpinnerVariant(*spinnerName)
	if err != nil {
		return err
	}

	coord := a.acquire(ctx, sensorOf())

	query := strings.TrimSpace(*text)
	if query == "" {
		query = a.readLine("오늘 뭐 먹지? > ")
	}

	key := recommend.Key{
		Text:       query,
		Coordinate: coord,
		Mode:       recommend.ModeRecommend,
	}
	return a.recommendLoop(ctx, key, variant)
}

// runTest drives the quiz flow and feeds the tag vector into the
// same recommendation loop.
func (a *App) runTest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	spinnerName := fs.String("spinner", "paws", "로딩 표시 종류 (dots, paws, bar)")
	sensorOf := locationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	variant, err := ParseSpinnerVariant(*spinnerName)
	if err != nil {
		return err
	}

	coord := a.acquire(ctx, sensorOf())

	sess := quiz.NewSession()
	fmt.Fprintln(a.out, "곰곰 취향 테스트를 시작합니다. 답은 a 또는 b 로 입력해 주세요.")
	for !sess.Done() {
		q := sess.Current()
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, q.Text)
		for _, ans := range q.Answers {
			fmt.Fprintln(a.out, "  "+ans.Label)
		}

		var tag string
		for tag == "" {
			switch a.readLine("> ") {
			case "a", "A":
				tag = q.Answers[0].Type
			case "b", "B":
				tag = q.Answers[1].Type
			default:
				fmt.Fprintln(a.out, "a 또는 b 로 답해 주세요.")
			}
		}
		sess.Answer(tag)
	}

	key := recommend.Key{
		Coordinate: coord,
		Tags:       sess.Tags(),
		Mode:       recommend.ModeTest,
	}
	return a.recommendLoop(ctx, key, variant)
}

// recommendLoop fetches once and then cycles through the pool on
// demand. 재조회(r)만 네트워크를 다시 탄다.
func (a *App) recommendLoop(ctx context.Context, key recommend.Key, variant SpinnerVariant) error {
	if err := key.Validate(); err != nil {
		if errors.Is(err, recommend.ErrMissingInput) {
			// 입력이 없으면 재시도가 아니라 처음부터 다시.
			fmt.Fprintln(a.out, "추천에 필요한 입력이 없습니다. 처음으로 돌아가 위치와 취향 정보를 입력해 주세요.")
			return nil
		}
		return err
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	a.watchSession(watchCtx)

	controller := recommend.NewController(a.api, a.cfg.Log)

	set, err := a.fetchWithSpinner(ctx, variant, func(ctx context.Context) (*recommend.ResultSet, error) {
		return controller.Fetch(ctx, key)
	})
	if err != nil {
		return err
	}

	pipeline := translate.NewPipeline(a.api, a.cfg.Log)
	translated := false

	for {
		candidate, ok := set.Current()
		if !ok {
			fmt.Fprintln(a.out, "추천할 가게가 없습니다. 다른 위치나 키워드로 다시 시도해 보세요.")
			return nil
		}
		a.printCandidate(candidate, set)

		switch a.readLine("\n[n] 다른 가게 [r] 다시 추천 [t] 번역 [q] 종료 > ") {
		case "n", "":
			set.Cycle()
		case "r":
			set, err = a.fetchWithSpinner(ctx, variant, func(ctx context.Context) (*recommend.ResultSet, error) {
				return controller.Refetch(ctx, key)
			})
			if err != nil {
				return err
			}
			translated = false
		case "t":
			if translated {
				fmt.Fprintln(a.out, "이미 번역된 결과입니다.")
				continue
			}
			set.Candidates = recommend.TranslateCandidates(ctx, pipeline, set.Candidates)
			translated = true
		case "q":
			return nil
		}
	}
}

func (a *App) printCandidate(c recommend.Candidate, set *recommend.ResultSet) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "=====================================")
	fmt.Fprintf(a.out, "  %s\n", c.Store)
	if c.Category != "" {
		fmt.Fprintf(a.out, "  분류: %s\n", c.Category)
	}
	if c.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", c.Description)
	}
	if len(c.Keywords) > 0 {
		fmt.Fprintf(a.out, "  키워드: %s\n", strings.Join(c.Keywords, ", "))
	}
	fmt.Fprintf(a.out, "  주소: %s\n", set.AddressOf(c))
	fmt.Fprintln(a.out, "=====================================")
}

// fetchWithSpinner runs fetch while animating the chosen indicator.
func (a *App) fetchWithSpinner(ctx context.Context, variant SpinnerVariant, fetch func(context.Context) (*recommend.ResultSet, error)) (*recommend.ResultSet, error) {
	spinner := NewSpinner(a.out, variant, "곰곰이 생각하는 중")
	spinner.Start()
	set, err := fetch(ctx)
	spinner.Stop()
	return set, err
}

// watchSession surfaces near-expiry warnings and forced logouts while
// the interactive loop is open.
func (a *App) watchSession(ctx context.Context) {
	events := a.broadcaster.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-events:
				if !ev.LoggedIn {
					fmt.Fprintf(a.out, "\n세션이 종료되었습니다 (%s). 다시 로그인해 주세요.\n", ev.Reason)
				}
			}
		}
	}()

	watcher := session.NewWatcher(a.guard, session.DefaultCheckInterval)
	watcher.OnWarn = func(remaining time.Duration) {
		fmt.Fprintf(a.out, "\n로그인이 %d분 후 만료됩니다.\n", int(remaining.Minutes()))
	}
	go watcher.Run(ctx)
}

func (a *App) acquire(ctx context.Context, sensor geo.Sensor) geo.Coordinate {
	acquirer := geo.NewAcquirer(sensor)
	coord := acquirer.Acquire(ctx)
	fmt.Fprintf(a.out, "위치: %.6f, %.6f\n", coord.Latitude, coord.Longitude)
	return coord
}

func (a *App) runRestaurants(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("restaurants", flag.ExitOnError)
	sensorOf := locationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	coord := a.acquire(ctx, sensorOf())

	items, address, err := a.api.Restaurants(ctx, coord)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n%s 주변 음식점 %d곳\n\n", address, len(items))
	for _, item := range items {
		fmt.Fprintf(a.out, "  %-20s  ⭐%.1f (%d)  %s  배달비 %s\n",
			item.Name, item.ReviewAvg, item.ReviewCount,
			strings.Join(item.Categories, "/"), item.DeliveryFee.Basic)
	}
	return nil
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "이메일")
	password := fs.String("password", "", "비밀번호")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		*email = a.readLine("이메일 > ")
	}
	if *password == "" {
		*password = a.readLine("비밀번호 > ")
	}

	token, err := a.api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s 님, 로그인되었습니다.\n", token.Nickname)
	return nil
}

func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "이메일")
	password := fs.String("password", "", "비밀번호 (8자 이상)")
	name := fs.String("name", "", "이름")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		*email = a.readLine("이메일 > ")
	}
	if *password == "" {
		*password = a.readLine("비밀번호 > ")
	}
	if *name == "" {
		*name = a.readLine("이름 > ")
	}

	if err := a.api.Register(ctx, client.RegisterRequest{
		Email:    *email,
		Password: *password,
		FullName: *name,
	}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "가입이 완료되었습니다. login 명령으로 로그인해 주세요.")
	return nil
}

func (a *App) runLogout() error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "로그아웃되었습니다.")
	return nil
}

func (a *App) runMe(ctx context.Context) error {
	profile, err := a.api.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrTokenExpired) || errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, "로그인이 필요합니다.")
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", profile.FullName, profile.Email)
	return nil
}
