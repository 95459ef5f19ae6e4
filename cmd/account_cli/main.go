// account_cli 命令行账号客户端，便于联调账号接口
//
// 用法:
//
//	account_cli [-config path] [-base url] [-token t] <op> [json-params]
//
// op: login, register, send-code, reset-password, wechat-login, logout, refresh-token, user-info
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"kama_account_client/internal/client/account"
	"kama_account_client/internal/config"
	"kama_account_client/internal/dto/request"
	"kama_account_client/internal/infrastructure/logger"
	"kama_account_client/internal/transport"
	"kama_account_client/pkg/errorx"
)

type command func(ctx context.Context, c *account.Client, params []byte) (any, error)

// withParams 把 json 参数解码为请求体后调用 fn
func withParams[T any](fn func(context.Context, *account.Client, T) (any, error)) command {
	return func(ctx context.Context, c *account.Client, params []byte) (any, error) {
		var req T
		if len(params) > 0 {
			if err := json.Unmarshal(params, &req); err != nil {
				return nil, errorx.Wrap(err, errorx.CodeInvalidParam, "解析参数失败")
			}
		}
		return fn(ctx, c, req)
	}
}

var commands = map[string]command{
	"login": withParams(func(ctx context.Context, c *account.Client, req request.LoginRequest) (any, error) {
		return c.Login(ctx, req)
	}),
	"register": withParams(func(ctx context.Context, c *account.Client, req request.RegisterRequest) (any, error) {
		return c.Register(ctx, req)
	}),
	"send-code": withParams(func(ctx context.Context, c *account.Client, req request.SendCodeRequest) (any, error) {
		return c.SendCode(ctx, req)
	}),
	"reset-password": withParams(func(ctx context.Context, c *account.Client, req request.ResetPasswordRequest) (any, error) {
		return c.ResetPassword(ctx, req)
	}),
	"wechat-login": withParams(func(ctx context.Context, c *account.Client, req request.WechatLoginRequest) (any, error) {
		return c.WechatLogin(ctx, req)
	}),
	"logout": func(ctx context.Context, c *account.Client, _ []byte) (any, error) {
		return c.Logout(ctx)
	},
	"refresh-token": func(ctx context.Context, c *account.Client, _ []byte) (any, error) {
		return c.RefreshToken(ctx)
	},
	"user-info": func(ctx context.Context, c *account.Client, _ []byte) (any, error) {
		return c.GetUserInfo(ctx)
	},
}

func usage(w io.Writer, fs *flag.FlagSet) {
	ops := make([]string, 0, len(commands))
	for op := range commands {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	fmt.Fprintf(w, "usage: account_cli [flags] <op> [json-params]\nops: %s\n", strings.Join(ops, ", "))
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// run 执行一次调用并返回进程退出码
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("account_cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "配置文件路径，留空时按默认路径查找")
	baseURL := fs.String("base", "", "覆盖 clientConfig.baseURL")
	token := fs.String("token", "", "覆盖 clientConfig.token")
	if err := fs.Parse(args); err != nil || fs.NArg() < 1 {
		usage(stderr, fs)
		return 2
	}

	op := fs.Arg(0)
	cmd, ok := commands[op]
	if !ok {
		fmt.Fprintf(stderr, "unknown op %q\n", op)
		usage(stderr, fs)
		return 2
	}
	var params []byte
	if fs.NArg() > 1 {
		params = []byte(fs.Arg(1))
	}

	conf := config.GetConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		conf = loaded
	}
	clientConf := conf.ClientConfig
	if *baseURL != "" {
		clientConf.BaseURL = *baseURL
	}
	if *token != "" {
		clientConf.Token = *token
	}

	// 只输出到控制台，level=debug 时可看到每次请求
	logConf := conf.LogConfig
	logConf.LogPath, logConf.FileName = "", ""
	if err := logger.Init(&logConf, "cli"); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	client := account.New(transport.NewHTTPTransport(clientConf))
	env, err := cmd(ctx, client, params)
	if err != nil {
		fmt.Fprintf(stderr, "%s failed (code %d): %v\n", op, errorx.GetCode(err), err)
		return 1
	}

	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
