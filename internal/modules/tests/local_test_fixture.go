package tests

import (
	"os"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ExposedService names a compose service port the fixture blocks on until
// the wait strategy passes.
type ExposedService struct {
	Port     int
	Strategy wait.Strategy
}

// LocalTestFixture brings up the docker-compose infrastructure the
// integration tests run against. Set SKIP_INFRASTRUCTURE=true to reuse an
// already-running stack.
type LocalTestFixture struct {
	dockerComposePath string
	compose           testcontainers.DockerCompose
}

func NewLocalTestFixture(dockerComposePath string, services map[string]ExposedService) (LocalTestFixture, error) {
	compose := testcontainers.NewLocalDockerCompose(
		[]string{dockerComposePath},
		uuid.New().String(),
	)

	dockerCompose := compose.WithCommand([]string{"up", "-d"})
	for serviceName, service := range services {
		dockerCompose = dockerCompose.WithExposedService(serviceName, service.Port, service.Strategy)
	}

	f := LocalTestFixture{
		dockerComposePath: dockerComposePath,
		compose:           dockerCompose,
	}

	return f, nil
}

func (f *LocalTestFixture) Start() error {
	if skip := os.Getenv("SKIP_INFRASTRUCTURE"); skip == "true" {
		return nil
	}

	execErr := f.compose.Invoke()
	return execErr.Error
}

func (f *LocalTestFixture) Stop() error {
	if skip := os.Getenv("SKIP_INFRASTRUCTURE"); skip == "true" {
		return nil
	}

	execErr := f.compose.Down()
	return execErr.Error
}
