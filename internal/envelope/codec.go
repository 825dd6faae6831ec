package envelope

import (
	"fmt"
	"strconv"

	"github.com/fxamacker/cbor/v2"

	"github.com/dep2p/go-mqrpc/pkg/interfaces"
	"github.com/dep2p/go-mqrpc/pkg/types"
)

// 响应信封的固定帧数
const replyFrameCount = 5

// 确定性编码模式，保证跨实现的上下文帧字节一致
var detEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("envelope: deterministic cbor mode: " + err.Error())
	}
	return em
}()

// Codec 信封编解码器
type Codec struct {
	enc cbor.EncMode
}

// NewCodec 创建编解码器
func NewCodec() *Codec {
	return &Codec{enc: detEncMode}
}

// SendRequest 将请求按 6 帧信封发往套接字
//
// routingKey 为端点标识或主题订阅过滤串，由调度策略决定。
func (c *Codec) SendRequest(sock interfaces.Socket, req *types.Request, routingKey string) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}
	if req.MessageID == "" {
		return fmt.Errorf("%w: empty message id", ErrInvalidRequest)
	}

	ctxBlob, err := c.enc.Marshal(req.Context)
	if err != nil {
		return fmt.Errorf("%w: encode context: %v", ErrInvalidRequest, err)
	}

	frames := [][]byte{
		{},
		req.MsgType.Wire(),
		[]byte(routingKey),
		[]byte(req.MessageID),
		ctxBlob,
		req.Message,
	}

	for i, frame := range frames {
		if err := sock.Send(frame, i < len(frames)-1); err != nil {
			return fmt.Errorf("%w: frame %d: %v", ErrTransport, i+1, err)
		}
	}
	return nil
}

// ReadReply 从一次可读事件读取并校验一条响应
//
// 先完整读出全部 5 帧再做结构校验：即便某帧违规，
// 本条信封也已整体出队，后续可读事件不会被残帧污染。
// 校验失败返回 ErrProtocolViolation；该次读取整体作废，
// 不影响其他在途调用。
func (c *Codec) ReadReply(sock interfaces.Socket) (*types.Reply, error) {
	frames := make([][]byte, replyFrameCount)
	for i := range frames {
		frame, err := recvFrame(sock)
		if err != nil {
			return nil, err
		}
		frames[i] = frame
	}

	if len(frames[0]) != 0 {
		return nil, fmt.Errorf("%w: non-empty delimiter", ErrProtocolViolation)
	}

	replyID := frames[1]
	if len(replyID) == 0 {
		return nil, fmt.Errorf("%w: missing reply id", ErrProtocolViolation)
	}

	msgType, err := strconv.Atoi(string(frames[2]))
	if err != nil || types.MessageType(msgType) != types.ReplyType {
		return nil, fmt.Errorf("%w: unexpected message type %q", ErrProtocolViolation, frames[2])
	}

	return &types.Reply{
		MessageID: string(frames[3]),
		ReplyID:   replyID,
		Payload:   frames[4],
	}, nil
}

// DecodeContext 解码上下文帧
//
// 供接收侧与测试镜像发送方角色使用。
func (c *Codec) DecodeContext(blob []byte) (map[string]string, error) {
	var ctx map[string]string
	if err := cbor.Unmarshal(blob, &ctx); err != nil {
		return nil, fmt.Errorf("%w: decode context: %v", ErrProtocolViolation, err)
	}
	return ctx, nil
}

// recvFrame 读取一帧并包装传输错误
func recvFrame(sock interfaces.Socket) ([]byte, error) {
	frame, err := sock.Recv()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return frame, nil
}
