package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/huaijinli/wazuh/pkg/sockets"
	"github.com/huaijinli/wazuh/pkg/wzerrors"
)

// ManagerID addresses the local node: its components are queried
// directly through their own sockets rather than routed through the
// request socket.
const ManagerID = "000"

// activeComponents are the components that answer getconfig queries.
var activeComponents = map[string]struct{}{
	"agent": {}, "agentless": {}, "analysis": {}, "auth": {}, "com": {},
	"csyslog": {}, "integrator": {}, "logcollector": {}, "mail": {},
	"monitor": {}, "request": {}, "syscheck": {}, "wmodules": {},
}

// GetActiveConfig retrieves the configuration a running component
// currently holds in memory, as opposed to the configuration on disk.
func GetActiveConfig(paths Paths, log zerolog.Logger, agentID, component, configuration string) (Map, error) {
	if component == "" || configuration == "" {
		return nil, wzerrors.Newf(wzerrors.KindMalformedInput, "component and configuration must be specified")
	}
	if _, ok := activeComponents[component]; !ok {
		return nil, wzerrors.Newf(wzerrors.KindResourceUnavailable,
			"unknown component %q, valid components: %s", component, strings.Join(componentNames(), ", "))
	}

	var socketPath, command string
	if agentID == ManagerID {
		socketPath = filepath.Join(paths.SocketsDir(), component)
		command = fmt.Sprintf("getconfig %s", configuration)
		if _, err := os.Stat(socketPath); err != nil {
			return nil, wzerrors.Newf(wzerrors.KindResourceUnavailable,
				"socket for component %q does not exist, verify the component is properly configured", component)
		}
	} else {
		socketPath = filepath.Join(paths.SocketsDir(), "request")
		command = fmt.Sprintf("%s %s getconfig %s", zeroPad(agentID, 3), component, configuration)
	}

	log.Debug().Str("socket", socketPath).Str("command", command).Msg("querying active configuration")

	sock, err := sockets.Connect(socketPath)
	if err != nil {
		return nil, wzerrors.New(wzerrors.KindTransport, err)
	}
	defer sock.Close()

	if err := sock.Send([]byte(command)); err != nil {
		return nil, wzerrors.New(wzerrors.KindTransport, err)
	}
	reply, err := sock.Receive()
	if err != nil {
		return nil, wzerrors.New(wzerrors.KindTransport, err)
	}

	return parseActiveReply(paths, string(reply), component, configuration)
}

// parseActiveReply splits a "<status> <payload>" frame, classifies
// failures and decodes the payload of successful replies.
func parseActiveReply(paths Paths, reply, component, configuration string) (Map, error) {
	status, payload, ok := strings.Cut(reply, " ")
	if !ok {
		return nil, wzerrors.Newf(wzerrors.KindTransport, "data could not be received")
	}

	if !strings.HasPrefix(status, "ok") {
		kind := wzerrors.KindRemoteError
		if strings.Contains(payload, "No such file or directory") ||
			strings.Contains(payload, "Cannot send request") {
			kind = wzerrors.KindRemoteUnavailable
		}
		return nil, wzerrors.Newf(kind, "%s:%s", component, configuration)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, wzerrors.New(wzerrors.KindRemoteError, fmt.Errorf("decode reply payload: %w", err))
	}
	msg, _ := FromAny(raw).(Map)

	mergeAuthSecret(paths, msg)
	return msg, nil
}

// mergeAuthSecret injects the enrollment secret into the reply when the
// component reports password authentication enabled. A missing secret
// file is not an error.
func mergeAuthSecret(paths Paths, msg Map) {
	auth, ok := msg["auth"].(Map)
	if !ok || auth["use_password"] != Scalar("yes") {
		return
	}
	raw, err := os.ReadFile(paths.AuthdPass())
	if err != nil {
		return
	}
	msg["authd.pass"] = Scalar(strings.TrimRight(string(raw), " \t\r\n"))
}

func componentNames() []string {
	names := make([]string, 0, len(activeComponents))
	for name := range activeComponents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// zeroPad left pads an id with zeros to the given width.
func zeroPad(id string, width int) string {
	if len(id) >= width {
		return id
	}
	return strings.Repeat("0", width-len(id)) + id
}
