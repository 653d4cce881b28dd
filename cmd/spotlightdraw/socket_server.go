package main

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
)

// Line protocol spoken on a session socket. The server greets with READY.
// Clients send PING, TOGGLE, SHUTDOWN or "EXEC <script line>". EXEC output
// comes back as OUT and ERR lines followed by one DONE line.
const (
	msgReady    = "READY"
	msgPing     = "PING"
	msgPong     = "PONG"
	msgToggle   = "TOGGLE"
	msgShutdown = "SHUTDOWN"
	msgExec     = "EXEC "
	msgOut      = "OUT "
	msgErr      = "ERR "
	msgDoneOK   = "DONE OK"
	msgDoneErr  = "DONE ERR "
	msgDoneQuit = "DONE OK CLOSE"
)

// socketServer exposes one session on a unix socket.
type socketServer struct {
	session  *session
	path     string
	listener net.Listener
	stopped  chan struct{}
	stopOnce sync.Once
	execMu   sync.Mutex
}

func runSocketServer(dir sessionDir, name string, sess *session) error {
	srv, err := listenSocket(dir, name, sess)
	if err != nil {
		return err
	}
	return srv.serve()
}

func listenSocket(dir sessionDir, name string, sess *session) (*socketServer, error) {
	if err := dir.ensure(); err != nil {
		return nil, err
	}
	path := dir.path(name)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	return &socketServer{session: sess, path: path, listener: ln, stopped: make(chan struct{})}, nil
}

// serve accepts connections until shutdown is called.
func (s *socketServer) serve() error {
	defer removeWithLog(s.path)
	for {
		conn, err := s.listener.Accept()
		if err == nil {
			go s.handle(conn)
			continue
		}
		select {
		case <-s.stopped:
			return nil
		default:
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			continue
		}
		return err
	}
}

func (s *socketServer) handle(conn net.Conn) {
	defer closeWithLog("socket connection", conn)
	if err := writeln(conn, msgReady); err != nil {
		log.Printf("socket greeting: %v", err)
		return
	}
	requests := bufio.NewScanner(conn)
	for requests.Scan() {
		line := requests.Text()
		reply, hangup := s.dispatch(conn, line)
		err := writeln(conn, reply)
		if line == msgShutdown {
			s.shutdown()
		}
		if err != nil {
			log.Printf("socket reply %q: %v", reply, err)
			return
		}
		if hangup {
			return
		}
	}
}

// dispatch answers one request line. hangup closes the connection after
// the reply is written.
func (s *socketServer) dispatch(conn net.Conn, line string) (reply string, hangup bool) {
	if command, ok := strings.CutPrefix(line, msgExec); ok {
		return s.exec(conn, command)
	}
	switch line {
	case msgPing:
		return msgPong, false
	case msgToggle:
		return msgDoneOK + " " + onOff(s.session.runner.Toggle()), false
	case msgShutdown:
		return msgDoneQuit, true
	}
	return msgErr + "unknown request", false
}

// exec runs one script line with its output streamed to conn.
func (s *socketServer) exec(conn net.Conn, command string) (reply string, hangup bool) {
	s.execMu.Lock()
	defer s.execMu.Unlock()
	restore := s.session.withIO(nil, &taggedWriter{w: conn, tag: msgOut}, &taggedWriter{w: conn, tag: msgErr})
	quit, err := s.session.executeLine(command)
	restore()
	if err != nil {
		return msgDoneErr + strings.ReplaceAll(err.Error(), "\n", `\n`), false
	}
	if quit {
		return msgDoneQuit, true
	}
	return msgDoneOK, false
}

func (s *socketServer) shutdown() {
	s.stopOnce.Do(func() {
		close(s.stopped)
		closeWithLog("socket listener", s.listener)
		removeWithLog(s.path)
	})
}

// taggedWriter prefixes every line written through it.
type taggedWriter struct {
	w   io.Writer
	tag string
}

func (t *taggedWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer
	for rest := p; len(rest) > 0; {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i+1]
		}
		rest = rest[len(line):]
		buf.WriteString(t.tag)
		buf.Write(line)
	}
	if _, err := t.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
