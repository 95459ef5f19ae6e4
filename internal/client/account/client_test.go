package account

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"kama_account_client/internal/dto/request"
	"kama_account_client/internal/dto/respond"
	"kama_account_client/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTransport 记录每一次调用，并按预设的信封或错误应答
type stubTransport struct {
	mu       sync.Mutex
	calls    []transport.Call
	outs     []any
	response any
	err      error
}

func (s *stubTransport) Send(ctx context.Context, call transport.Call, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	s.outs = append(s.outs, out)
	if s.err != nil {
		return s.err
	}
	if s.response == nil {
		return nil
	}
	raw, err := json.Marshal(s.response)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *stubTransport) lastCall(t *testing.T) transport.Call {
	t.Helper()
	require.Len(t, s.calls, 1, "exactly one transport invocation expected")
	return s.calls[0]
}

// operation 把各个方法统一成同一种形状，便于表驱动
type operation struct {
	name     string
	endpoint string
	method   transport.Method
	body     any
	invoke   func(ctx context.Context, c *Client) (any, error)
}

var (
	pwdLogin = request.LoginRequest{Type: request.LoginTypePassword, Account: "a", Password: "b"}
	register = request.RegisterRequest{Phone: "13800000000", Password: "secret1", Code: "123456", Nickname: "kama"}
	sendCode = request.SendCodeRequest{Phone: "13800000000", Purpose: request.CodePurposeRegister}
	reset    = request.ResetPasswordRequest{Phone: "123", Code: "000000", NewPassword: "p"}
	wechat   = request.WechatLoginRequest{Code: "wx-code", State: "xyz"}
)

func operations() []operation {
	return []operation{
		{"login", EndpointLogin, transport.MethodPost, pwdLogin, func(ctx context.Context, c *Client) (any, error) {
			return c.Login(ctx, pwdLogin)
		}},
		{"register", EndpointRegister, transport.MethodPost, register, func(ctx context.Context, c *Client) (any, error) {
			return c.Register(ctx, register)
		}},
		{"sendCode", EndpointSendCode, transport.MethodPost, sendCode, func(ctx context.Context, c *Client) (any, error) {
			return c.SendCode(ctx, sendCode)
		}},
		{"resetPassword", EndpointResetPassword, transport.MethodPost, reset, func(ctx context.Context, c *Client) (any, error) {
			return c.ResetPassword(ctx, reset)
		}},
		{"wechatLogin", EndpointWechatLogin, transport.MethodPost, wechat, func(ctx context.Context, c *Client) (any, error) {
			return c.WechatLogin(ctx, wechat)
		}},
		{"logout", EndpointLogout, transport.MethodPost, nil, func(ctx context.Context, c *Client) (any, error) {
			return c.Logout(ctx)
		}},
		{"refreshToken", EndpointRefreshToken, transport.MethodPost, nil, func(ctx context.Context, c *Client) (any, error) {
			return c.RefreshToken(ctx)
		}},
		{"userInfo", EndpointUserInfo, transport.MethodGet, nil, func(ctx context.Context, c *Client) (any, error) {
			return c.GetUserInfo(ctx)
		}},
	}
}

func TestClient_OneCallMatchingCatalog(t *testing.T) {
	for _, op := range operations() {
		t.Run(op.name, func(t *testing.T) {
			stub := &stubTransport{response: map[string]any{"success": true, "code": 200, "msg": "ok"}}
			_, err := op.invoke(context.Background(), New(stub))
			require.NoError(t, err)

			call := stub.lastCall(t)
			assert.Equal(t, op.endpoint, call.Endpoint)
			assert.Equal(t, op.method, call.Method)
			assert.Equal(t, op.body, call.Body)
			assert.Nil(t, call.Query)
		})
	}
}

func TestClient_ReturnsTransportEnvelopeUnmodified(t *testing.T) {
	for _, op := range operations() {
		t.Run(op.name, func(t *testing.T) {
			stub := &stubTransport{response: map[string]any{"success": true, "code": 200, "msg": "m"}}
			got, err := op.invoke(context.Background(), New(stub))
			require.NoError(t, err)
			require.Len(t, stub.outs, 1)
			// 返回的就是传输层填充的那个信封
			assert.Same(t, stub.outs[0], got)
		})
	}
}

func TestClient_PassesThroughObjectData(t *testing.T) {
	session := respond.LoginRespond{
		Token: "tok",
		User:  respond.UserInfo{ID: "u1", Phone: "13800000000", Nickname: "kama", Avatar: "https://a/b.png"},
	}
	stub := &stubTransport{response: map[string]any{"success": true, "code": 200, "msg": "登录成功", "data": session}}

	env, err := New(stub).Login(context.Background(), pwdLogin)
	require.NoError(t, err)
	assert.Equal(t, &transport.Envelope[respond.LoginRespond]{Success: true, Code: 200, Msg: "登录成功", Data: &session}, env)
}

func TestClient_PassesThroughPrimitiveData(t *testing.T) {
	stub := &stubTransport{response: map[string]any{"success": true, "code": 200, "msg": "ok", "data": true}}

	env, err := New(stub).ResetPassword(context.Background(), reset)
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.True(t, *env.Data)
	assert.Equal(t, 200, env.Code)
}

func TestClient_DoesNotInterpretUnsuccessfulEnvelope(t *testing.T) {
	stub := &stubTransport{response: map[string]any{"success": false, "code": 1004, "msg": "密码不正确"}}

	env, err := New(stub).Login(context.Background(), pwdLogin)
	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.Equal(t, 1004, env.Code)
	assert.Nil(t, env.Data)
}

func TestClient_PropagatesTransportErrorUnchanged(t *testing.T) {
	boom := errors.New("network unreachable")
	for _, op := range operations() {
		t.Run(op.name, func(t *testing.T) {
			stub := &stubTransport{err: boom}
			got, err := op.invoke(context.Background(), New(stub))
			assert.True(t, err == boom, "error must be the transport's value, got %v", err)
			assert.Nil(t, got)
			assert.Len(t, stub.calls, 1)
		})
	}
}

func TestClient_LoginBodiesPassedThroughUnchanged(t *testing.T) {
	codeLogin := request.LoginRequest{Type: request.LoginTypeCode, Phone: "1", Code: "9"}

	stub := &stubTransport{}
	c := New(stub)
	_, err := c.Login(context.Background(), pwdLogin)
	require.NoError(t, err)
	_, err = c.Login(context.Background(), codeLogin)
	require.NoError(t, err)

	require.Len(t, stub.calls, 2)
	assert.Equal(t, pwdLogin, stub.calls[0].Body)
	assert.Equal(t, codeLogin, stub.calls[1].Body)
	assert.NotEqual(t, stub.calls[0].Body, stub.calls[1].Body)

	raw, err := json.Marshal(stub.calls[0].Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pwd","account":"a","password":"b"}`, string(raw))
	raw, err = json.Marshal(stub.calls[1].Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"code","phone":"1","code":"9"}`, string(raw))
}

func TestClient_ResetPasswordWireShape(t *testing.T) {
	stub := &stubTransport{}
	_, err := New(stub).ResetPassword(context.Background(), reset)
	require.NoError(t, err)

	call := stub.lastCall(t)
	raw, err := json.Marshal(call.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"phone":"123","code":"000000","newPassword":"p"}`, string(raw))
}

func TestClient_SendCodeReachesTransport(t *testing.T) {
	stub := &stubTransport{err: errors.New("backend down")}
	env, err := New(stub).SendCode(context.Background(), sendCode)
	require.Error(t, err)
	assert.Nil(t, env)

	call := stub.lastCall(t)
	raw, err := json.Marshal(call.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"phone":"13800000000","type":"register"}`, string(raw))
}

func TestClient_ConcurrentCallsAreIndependent(t *testing.T) {
	stub := &stubTransport{response: map[string]any{"success": true, "code": 200, "msg": "ok"}}
	c := New(stub)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.GetUserInfo(context.Background())
		}()
	}
	wg.Wait()
	assert.Len(t, stub.calls, 16)
}
