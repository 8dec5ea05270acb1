package openai

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	"github.com/entrhq/cua/pkg/types"
)

// buildInput converts conversation messages to Responses API input
// items. System and user messages become input messages with
// text/image content. Assistant messages contribute their text as an
// input message plus one computer_call or function_call item per
// pending action, so that replayed history still contains the call
// item each later call output answers. Tool messages expand into one
// computer_call_output or function_call_output item per action output,
// preserving call id correlation.
func buildInput(messages []*types.Message) responses.ResponseInputParam {
	var items responses.ResponseInputParam

	for _, msg := range messages {
		switch msg.Role {
		case types.RoleTool:
			for _, out := range msg.Outputs {
				items = append(items, outputItem(out))
			}
		case types.RoleAssistant:
			if len(msg.Parts) > 0 {
				items = append(items, messageItem(msg))
			}
			for _, action := range msg.Actions {
				items = append(items, callItem(action))
			}
		default:
			items = append(items, messageItem(msg))
		}
	}

	return items
}

// messageItem builds an input message from the message's ordered parts.
func messageItem(msg *types.Message) responses.ResponseInputItemUnionParam {
	content := make(responses.ResponseInputMessageContentListParam, 0, len(msg.Parts))
	for _, part := range msg.Parts {
		switch part.Type {
		case types.PartImage:
			content = append(content, responses.ResponseInputContentUnionParam{
				OfInputImage: &responses.ResponseInputImageParam{
					ImageURL: openai.String(part.ImageURL),
					Detail:   responses.ResponseInputImageDetailAuto,
				},
			})
		default:
			content = append(content, responses.ResponseInputContentUnionParam{
				OfInputText: &responses.ResponseInputTextParam{Text: part.Text},
			})
		}
	}

	return responses.ResponseInputItemUnionParam{
		OfMessage: &responses.EasyInputMessageParam{
			Role: inputRole(msg.Role),
			Content: responses.EasyInputMessageContentUnionParam{
				OfInputItemContentList: content,
			},
		},
	}
}

func inputRole(role types.Role) responses.EasyInputMessageRole {
	switch role {
	case types.RoleSystem:
		return responses.EasyInputMessageRoleSystem
	case types.RoleAssistant:
		return responses.EasyInputMessageRoleAssistant
	default:
		return responses.EasyInputMessageRoleUser
	}
}

// callItem re-emits one pending action request as a call input item.
// Without it, a full-history replay would carry call outputs whose
// call id references nothing, which the API rejects.
func callItem(action types.ActionRequest) responses.ResponseInputItemUnionParam {
	if action.Kind == types.ActionComputerCall {
		return responses.ResponseInputItemUnionParam{
			OfComputerCall: &responses.ResponseComputerToolCallParam{
				CallID: action.CallID,
				Action: encodeComputerAction(action.Computer),
				Status: responses.ResponseComputerToolCallStatusCompleted,
			},
		}
	}

	return responses.ResponseInputItemUnionParam{
		OfFunctionCall: &responses.ResponseFunctionToolCallParam{
			CallID:    action.CallID,
			Name:      action.Name,
			Arguments: action.Arguments,
		},
	}
}

// encodeComputerAction rebuilds the SDK action union from the typed
// primitive, inverting decodeComputerAction.
func encodeComputerAction(action types.ComputerAction) responses.ResponseComputerToolCallActionUnionParam {
	switch action.Type {
	case "double_click":
		return responses.ResponseComputerToolCallActionUnionParam{
			OfDoubleClick: &responses.ResponseComputerToolCallActionDoubleClickParam{
				X: int64(action.X),
				Y: int64(action.Y),
			},
		}
	case "drag":
		path := make([]responses.ResponseComputerToolCallActionDragPathParam, len(action.Path))
		for i, p := range action.Path {
			path[i] = responses.ResponseComputerToolCallActionDragPathParam{
				X: int64(p.X),
				Y: int64(p.Y),
			}
		}
		return responses.ResponseComputerToolCallActionUnionParam{
			OfDrag: &responses.ResponseComputerToolCallActionDragParam{Path: path},
		}
	case "keypress":
		return responses.ResponseComputerToolCallActionUnionParam{
			OfKeypress: &responses.ResponseComputerToolCallActionKeypressParam{Keys: action.Keys},
		}
	case "move":
		return responses.ResponseComputerToolCallActionUnionParam{
			OfMove: &responses.ResponseComputerToolCallActionMoveParam{
				X: int64(action.X),
				Y: int64(action.Y),
			},
		}
	case "screenshot":
		return responses.ResponseComputerToolCallActionUnionParam{
			OfScreenshot: &responses.ResponseComputerToolCallActionScreenshotParam{},
		}
	case "scroll":
		return responses.ResponseComputerToolCallActionUnionParam{
			OfScroll: &responses.ResponseComputerToolCallActionScrollParam{
				X:       int64(action.X),
				Y:       int64(action.Y),
				ScrollX: int64(action.ScrollX),
				ScrollY: int64(action.ScrollY),
			},
		}
	case "type":
		return responses.ResponseComputerToolCallActionUnionParam{
			OfType: &responses.ResponseComputerToolCallActionTypeParam{Text: action.Text},
		}
	case "wait":
		return responses.ResponseComputerToolCallActionUnionParam{
			OfWait: &responses.ResponseComputerToolCallActionWaitParam{},
		}
	default:
		return responses.ResponseComputerToolCallActionUnionParam{
			OfClick: &responses.ResponseComputerToolCallActionClickParam{
				Button: action.Button,
				X:      int64(action.X),
				Y:      int64(action.Y),
			},
		}
	}
}

// outputItem builds the call-output input item answering one executed
// action request.
func outputItem(out types.ActionOutput) responses.ResponseInputItemUnionParam {
	if out.Kind == types.ActionComputerCall {
		return responses.ResponseInputItemUnionParam{
			OfComputerCallOutput: &responses.ResponseInputItemComputerCallOutputParam{
				CallID: out.CallID,
				Output: responses.ResponseComputerToolCallOutputScreenshotParam{
					ImageURL: openai.String(out.ScreenshotURL),
				},
			},
		}
	}

	return responses.ResponseInputItemUnionParam{
		OfFunctionCallOutput: &responses.ResponseInputItemFunctionCallOutputParam{
			CallID: out.CallID,
			Output: out.Text,
		},
	}
}

// decodeResponse converts a Responses API reply into a single assistant
// message: text parts from output messages, pending action requests
// from computer_call and function_call items, and the response id as
// the continuation token.
func decodeResponse(resp *responses.Response) *types.Message {
	msg := &types.Message{
		Role:       types.RoleAssistant,
		ResponseID: resp.ID,
	}

	for _, item := range resp.Output {
		switch item.Type {
		case "message":
			out := item.AsMessage()
			for _, c := range out.Content {
				if c.Type == "output_text" && c.Text != "" {
					msg.Parts = append(msg.Parts, types.TextPart(c.Text))
				}
			}

		case "computer_call":
			call := item.AsComputerCall()
			msg.Actions = append(msg.Actions, types.ActionRequest{
				Kind:     types.ActionComputerCall,
				CallID:   call.CallID,
				Computer: decodeComputerAction(call.Action),
			})

		case "function_call":
			call := item.AsFunctionCall()
			msg.Actions = append(msg.Actions, types.ActionRequest{
				Kind:      types.ActionFunctionCall,
				CallID:    call.CallID,
				Name:      call.Name,
				Arguments: call.Arguments,
			})

		case "reasoning":
			// Summaries are informational only.
			backendLog.Debugf("reasoning item on response %s", resp.ID)
		}
	}

	return msg
}

// decodeComputerAction flattens the SDK action union into the typed
// primitive executed by the dispatcher.
func decodeComputerAction(action responses.ResponseComputerToolCallActionUnion) types.ComputerAction {
	out := types.ComputerAction{
		Type:    string(action.Type),
		X:       float64(action.X),
		Y:       float64(action.Y),
		Button:  string(action.Button),
		Text:    action.Text,
		Keys:    action.Keys,
		ScrollX: int(action.ScrollX),
		ScrollY: int(action.ScrollY),
	}

	for _, p := range action.Path {
		out.Path = append(out.Path, types.Point{X: float64(p.X), Y: float64(p.Y)})
	}

	return out
}
