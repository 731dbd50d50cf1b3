// Command battleship-client is a minimal interactive client sufficient to
// exercise the protocol end to end: a background goroutine prints every
// incoming frame, the main goroutine reads input lines with a bufio.Scanner
// and writes frames on demand. Grounded in lzx325-os_project's client main
// loop (parseArgument + getTarget's fmt.Scan-retry-until-valid prompt),
// adapted from an RPC client to a raw line-protocol TCP client.
package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/lrivas/battleship-tcp/internal/netutil"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: battleship-client <log-path>")
		os.Exit(1)
	}
	logPath := os.Args[1]

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	serverIP := os.Getenv("SERVER_IP")
	if serverIP == "" {
		serverIP = "127.0.0.1"
	}
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}
	addr := net.JoinHostPort(serverIP, serverPort)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Fatalf("dial %s: %v", addr, err)
	}
	defer conn.Close()
	logger.Printf("connected to %s", addr)
	fmt.Printf("----- connected to %s\n", addr)

	go printIncoming(conn, logger)
	promptLoop(conn, logger)
}

// printIncoming prints every frame the server sends, stripping the
// trailing newline, until the connection closes.
func printIncoming(conn net.Conn, logger *log.Logger) {
	reader := netutil.NewFrameReader(conn)
	for {
		frame, err := reader.ReadFrame()
		if err != nil {
			fmt.Println("----- disconnected from server")
			logger.Printf("disconnected: %v", err)
			os.Exit(0)
		}
		line := strings.TrimSuffix(string(frame), "\n")
		fmt.Println(line)
		logger.Printf("recv: %s", line)
	}
}

// promptLoop reads one whitespace-delimited command per line from stdin
// and sends the corresponding frame. It never validates game semantics
// locally — every command is sent as-is and the server's ERROR frames are
// the feedback channel (lzx325-os_project's getTarget retries locally; this
// client instead retries by simply prompting again on the next line).
func promptLoop(conn net.Conn, logger *log.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	printHelp()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		frame, ok := buildFrame(line)
		if !ok {
			fmt.Println("----- unrecognized command, try again")
			printHelp()
			continue
		}
		if err := netutil.WriteFrame(conn, frame); err != nil {
			fmt.Println("----- write failed:", err)
			logger.Printf("write failed: %v", err)
			return
		}
		logger.Printf("sent: %s", strings.TrimSuffix(frame, "\n"))
	}
}

func printHelp() {
	fmt.Println("----- commands: register <nickname> <email> | place <TYPE>:<C1>,<C2>,...;... | shoot <coord> | surrender")
}

func buildFrame(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	switch strings.ToLower(fields[0]) {
	case "register":
		if len(fields) != 3 {
			return "", false
		}
		return fmt.Sprintf("REGISTER|%s,%s\n", fields[1], fields[2]), true

	case "place":
		if len(fields) != 2 {
			return "", false
		}
		return fmt.Sprintf("PLACE_SHIPS|%s\n", fields[1]), true

	case "shoot":
		if len(fields) != 2 {
			return "", false
		}
		return fmt.Sprintf("SHOOT|%s\n", strings.ToUpper(fields[1])), true

	case "surrender":
		if len(fields) != 1 {
			return "", false
		}
		return "SURRENDER|\n", true

	default:
		return "", false
	}
}
