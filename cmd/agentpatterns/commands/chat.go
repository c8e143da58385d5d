package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/agentpatterns/pkg/agent"
	"github.com/haivivi/agentpatterns/pkg/cli"
)

// chatRequest describes a two-agent chat. It can be loaded with -f and is
// overridden by flags that are set explicitly.
type chatRequest struct {
	Message   string          `json:"message" yaml:"message"`
	MaxTurns  int             `json:"max_turns" yaml:"max_turns"`
	Summary   string          `json:"summary" yaml:"summary"`
	Terminate string          `json:"terminate" yaml:"terminate"`
	Sender    chatParticipant `json:"sender" yaml:"sender"`
	Recipient chatParticipant `json:"recipient" yaml:"recipient"`
}

type chatParticipant struct {
	Name   string `json:"name" yaml:"name"`
	System string `json:"system" yaml:"system"`
	Model  string `json:"model" yaml:"model"`
}

var (
	chatFile string
	chatReq  = chatRequest{
		MaxTurns:  2,
		Summary:   string(agent.SummaryLastMessage),
		Sender:    chatParticipant{Name: "student", System: "You are a curious student. Ask one short follow-up question at a time."},
		Recipient: chatParticipant{Name: "teacher", System: "You are a patient teacher. Answer briefly and clearly."},
	}
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run a two-agent conversation",
	Long: `Let two conversable agents talk for up to --max-turns turns. A turn is
a message from the sender followed by the recipient's reply. When a message
contains the --terminate phrase the agent receiving it stops the chat.

Examples:
  agentpatterns chat --message "What is a goroutine?" --max-turns 3
  agentpatterns chat -f chat.yaml --summary reflection_with_llm --json`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	f := chatCmd.Flags()
	f.StringVarP(&chatFile, "file", "f", "", "chat request file (YAML or JSON)")
	f.StringVar(&chatReq.Message, "message", "", "first message from the sender")
	f.IntVar(&chatReq.MaxTurns, "max-turns", chatReq.MaxTurns, "maximum turns (0: until terminated)")
	f.StringVar(&chatReq.Summary, "summary", chatReq.Summary, "summary method: last_msg or reflection_with_llm")
	f.StringVar(&chatReq.Terminate, "terminate", "", "phrase that ends the chat")
	f.StringVar(&chatReq.Sender.Name, "sender", chatReq.Sender.Name, "sender name")
	f.StringVar(&chatReq.Sender.System, "sender-system", chatReq.Sender.System, "sender system message")
	f.StringVar(&chatReq.Recipient.Name, "recipient", chatReq.Recipient.Name, "recipient name")
	f.StringVar(&chatReq.Recipient.System, "recipient-system", chatReq.Recipient.System, "recipient system message")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	req := chatReq
	if chatFile != "" {
		var fromFile chatRequest
		if err := cli.LoadRequest(chatFile, &fromFile); err != nil {
			return err
		}
		req = mergeChatRequest(cmd, fromFile, chatReq)
	}
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("--message is required")
	}

	completer, model, err := resolveCompleter(ctx)
	if err != nil {
		return err
	}
	var terminate func(string) bool
	if req.Terminate != "" {
		terminate = func(s string) bool { return strings.Contains(s, req.Terminate) }
	}
	participant := func(p chatParticipant) *agent.ConversableAgent {
		m := p.Model
		if m == "" {
			m = model
		}
		return &agent.ConversableAgent{
			Name:          p.Name,
			SystemMessage: p.System,
			Model:         m,
			Completer:     completer,
			IsTermination: terminate,
		}
	}

	sender := participant(req.Sender)
	res, err := sender.InitiateChat(ctx, participant(req.Recipient), req.Message, agent.ChatOptions{
		MaxTurns: req.MaxTurns,
		Summary:  agent.SummaryMethod(req.Summary),
	})
	if err != nil {
		return err
	}
	return outputResult(res)
}

// mergeChatRequest starts from the file and applies flags the user set.
func mergeChatRequest(cmd *cobra.Command, file, flags chatRequest) chatRequest {
	out := file
	changed := cmd.Flags().Changed
	set := func(name string, dst *string, v string) {
		if changed(name) || *dst == "" {
			*dst = v
		}
	}
	set("message", &out.Message, flags.Message)
	set("summary", &out.Summary, flags.Summary)
	set("terminate", &out.Terminate, flags.Terminate)
	set("sender", &out.Sender.Name, flags.Sender.Name)
	set("sender-system", &out.Sender.System, flags.Sender.System)
	set("recipient", &out.Recipient.Name, flags.Recipient.Name)
	set("recipient-system", &out.Recipient.System, flags.Recipient.System)
	if changed("max-turns") || out.MaxTurns == 0 {
		out.MaxTurns = flags.MaxTurns
	}
	return out
}
