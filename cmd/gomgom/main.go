// Command gomgom is the terminal front end of the GomGom food
// recommendation service: 위치 확인 → 취향 테스트(또는 자유 입력) →
// 추천 → 다른 가게 보기 순서로 흐른다.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gomgom-ai/gomgom-services/app/internal/client"
	"github.com/gomgom-ai/gomgom-services/app/internal/config"
	"github.com/gomgom-ai/gomgom-services/app/internal/geo"
	"github.com/gomgom-ai/gomgom-services/app/internal/session"
)

func main() {
	cfg := config.LoadClient()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	store := session.NewFileStore(cfg.SessionFilePath)
	broadcaster := session.NewBroadcaster()
	guard := session.NewGuard(store, broadcaster, cfg.Log)
	api := client.New(client.Config{
		BaseURL:    cfg.BaseURL,
		Guard:      guard,
		Store:      store,
		Logger:     cfg.Log,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})

	app := &App{
		cfg:         cfg,
		api:         api,
		store:       store,
		guard:       guard,
		broadcaster: broadcaster,
		in:          bufio.NewScanner(os.Stdin),
		out:         os.Stdout,
	}

	ctx := context.Background()

	var err error
	switch command {
	case "recommend":
		err = app.runRecommend(ctx, args)
	case "test":
		err = app.runTest(ctx, args)
	case "restaurants":
		err = app.runRestaurants(ctx, args)
	case "login":
		err = app.runLogin(ctx, args)
	case "register":
		err = app.runRegister(ctx, args)
	case "logout":
		err = app.runLogout()
	case "me":
		err = app.runMe(ctx)
	default:
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "오류: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `사용법: gomgom <명령> [플래그]

명령:
  recommend   자유 입력으로 음식점을 추천받는다
  test        취향 테스트를 풀고 결과로 추천받는다
  restaurants 주변 음식점 목록을 본다
  login       이메일/비밀번호로 로그인
  register    계정 등록
  logout      저장된 세션 삭제
  me          로그인된 계정 확인`)
}

// locationFlags installs the shared -lat/-lng pair on fs and returns
// a sensor factory bound to them. Unset coordinates mean no sensor,
// which resolves to the service's default city centre.
func locationFlags(fs *flag.FlagSet) func() geo.Sensor {
	lat := fs.Float64("lat", 0, "현재 위도 (미지정 시 기본 지역)")
	lng := fs.Float64("lng", 0, "현재 경도 (미지정 시 기본 지역)")
	return func() geo.Sensor {
		if *lat == 0 && *lng == 0 {
			return nil
		}
		return staticSensor{coord: geo.Coordinate{Latitude: *lat, Longitude: *lng}}
	}
}

// staticSensor reports a fixed coordinate, the terminal equivalent of
// a granted geolocation permission.
type staticSensor struct {
	coord geo.Coordinate
}

func (s staticSensor) Current(context.Context) (geo.Coordinate, error) {
	return s.coord, nil
}

func (a *App) readLine(prompt string) string {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}
