// Per-account metadata supplied by collaborators: the responsible owner (PI) of each account and
// the account's storage usage in GB.  Both are read-only joins; a missing account resolves to an
// explicit zero value, never an error, since an incomplete metadata join should not block an
// otherwise-valid record.

package db

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

type AccountOwners map[string]string

// The owner of the account, or "" when unknown.
func (a AccountOwners) Owner(account string) string {
	return a[account]
}

type AccountStorage map[string]int

// The account's storage usage in GB, or 0 when unknown.
func (a AccountStorage) GB(account string) int {
	return a[account]
}

// Read newline-delimited "account,owner" pairs.  Malformed lines are dropped and counted.

func ReadAccountOwners(input io.Reader) (AccountOwners, int, error) {
	owners := make(AccountOwners)
	softErrors := 0
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		account, owner, found := strings.Cut(line, ",")
		account = strings.TrimSpace(account)
		owner = strings.TrimSpace(owner)
		if !found || account == "" || owner == "" {
			softErrors++
			continue
		}
		owners[account] = owner
	}
	if err := scanner.Err(); err != nil {
		return nil, softErrors, err
	}
	return owners, softErrors, nil
}

// Read newline-delimited "account,gb" pairs.  Malformed lines are dropped and counted.

func ReadAccountStorage(input io.Reader) (AccountStorage, int, error) {
	storage := make(AccountStorage)
	softErrors := 0
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		account, gbs, found := strings.Cut(line, ",")
		account = strings.TrimSpace(account)
		gbs = strings.TrimSpace(gbs)
		if !found || account == "" {
			softErrors++
			continue
		}
		gb, err := strconv.Atoi(gbs)
		if err != nil {
			softErrors++
			continue
		}
		storage[account] = gb
	}
	if err := scanner.Err(); err != nil {
		return nil, softErrors, err
	}
	return storage, softErrors, nil
}
