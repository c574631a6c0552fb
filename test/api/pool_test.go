package main

import (
	"fmt"
	"net/http"
	"testing"

	poolcommands "github.com/eskrenkovic/matchmaker-go/internal/modules/pool/commands"
	pooldomain "github.com/eskrenkovic/matchmaker-go/internal/modules/pool/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_CreatePool_Creates_New_Pool(t *testing.T) {
	// Arrange
	command := poolcommands.CreatePoolCommand{
		Name:     uuid.NewString(),
		Location: "novi sad",
	}

	// Act
	resp := postJSON(t, "/pools", command)

	// Assert
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Location"))

	pool := decodeBody[pooldomain.Pool](t, resp)
	require.Equal(t, command.Name, pool.Name)
	require.Equal(t, command.Location, pool.Location)
}

func Test_CreatePool_Returns_400_When_Name_Empty(t *testing.T) {
	// Act
	resp := postJSON(t, "/pools", poolcommands.CreatePoolCommand{Name: ""})
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_GetPool_Returns_404_For_Unknown_Pool(t *testing.T) {
	// Act
	resp, err := fixture.client.Get(fmt.Sprintf("%s/pools/%s", fixture.baseURL, uuid.New()))
	require.NoError(t, err)
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_AddPoolMember_Returns_409_For_Duplicate_Member(t *testing.T) {
	// Arrange
	userID := uuid.New()
	poolID := createPoolWithMembers(t, userID)

	// Act
	resp := postJSON(
		t,
		fmt.Sprintf("/pools/%s/members", poolID),
		poolcommands.AddPoolMemberCommand{UserID: userID},
	)
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func Test_AddPoolMember_Returns_404_For_Unknown_Pool(t *testing.T) {
	// Act
	resp := postJSON(
		t,
		fmt.Sprintf("/pools/%s/members", uuid.New()),
		poolcommands.AddPoolMemberCommand{UserID: uuid.New()},
	)
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_RemovePoolMember_Returns_404_When_Not_A_Member(t *testing.T) {
	// Arrange
	poolID := createPoolWithMembers(t)

	// Act
	resp := deleteRequest(t, fmt.Sprintf("/pools/%s/members/%s", poolID, uuid.New()))
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_ListPoolMembers_Returns_Members_Oldest_First(t *testing.T) {
	// Arrange
	u1, u2 := uuid.New(), uuid.New()
	poolID := createPoolWithMembers(t, u1, u2)

	// Act
	members := getJSON[[]pooldomain.PoolMember](
		t,
		fmt.Sprintf("/pools/%s/members", poolID),
		http.StatusOK,
	)

	// Assert
	require.Len(t, members, 2)
	require.Equal(t, u1, members[0].UserID)
	require.Equal(t, u2, members[1].UserID)
}

func Test_ListPoolMembers_Respects_Skip_And_Limit(t *testing.T) {
	// Arrange
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()
	poolID := createPoolWithMembers(t, u1, u2, u3)

	// Act
	page := getJSON[[]pooldomain.PoolMember](
		t,
		fmt.Sprintf("/pools/%s/members?skip=1&limit=1", poolID),
		http.StatusOK,
	)

	// Assert
	require.Len(t, page, 1)
	require.Equal(t, u2, page[0].UserID)
}

func Test_DeletePool_Cascades_To_Members_And_Matches(t *testing.T) {
	// Arrange
	u1, u2 := uuid.New(), uuid.New()
	poolID := createPoolWithMembers(t, u1, u2)
	match := createMatch(t, poolID, u1, u2)

	// Act
	resp := deleteRequest(t, fmt.Sprintf("/pools/%s", poolID))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Assert
	var matches, members int
	require.NoError(t, fixture.db.QueryRow("SELECT count(*) FROM matches WHERE id = $1", match.ID).Scan(&matches))
	require.NoError(t, fixture.db.QueryRow("SELECT count(*) FROM pool_members WHERE pool_id = $1", poolID).Scan(&members))
	require.Equal(t, 0, matches)
	require.Equal(t, 0, members)
}

func Test_DeletePool_Returns_404_For_Unknown_Pool(t *testing.T) {
	// Act
	resp := deleteRequest(t, fmt.Sprintf("/pools/%s", uuid.New()))
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
